package auth

import (
	"context"
	"net/http"
)

// Solicitante é quem está fazendo a requisição, extraído do access token.
type Solicitante struct {
	UsuarioID uint   `json:"userId"`
	Nome      string `json:"nome"`
	Admin     bool   `json:"isAdmin"`
	Setor     string `json:"setor,omitempty"`
}

// SetorVisivel devolve o setor que deve restringir as consultas.
// Usuário de departamento com setor vê só o próprio setor; admin vê tudo,
// a menos que peça um setor específico. "" significa sem restrição.
func (s Solicitante) SetorVisivel(filtro string) string {
	if !s.Admin {
		return s.Setor
	}
	return filtro
}

// PodeVerSetor diz se um registro do setor informado é visível.
func (s Solicitante) PodeVerSetor(setor string) bool {
	return s.Admin || s.Setor == "" || s.Setor == setor
}

type ctxKey string

const CtxSolicitante ctxKey = "solicitante"

func ComSolicitante(ctx context.Context, s Solicitante) context.Context {
	return context.WithValue(ctx, CtxSolicitante, s)
}

// SolicitanteDoContexto devolve o solicitante gravado pelo middleware.
func SolicitanteDoContexto(ctx context.Context) (Solicitante, bool) {
	s, ok := ctx.Value(CtxSolicitante).(Solicitante)
	return s, ok
}

// SolicitanteDe é um atalho para handlers atrás do MiddlewareAutenticacao.
func SolicitanteDe(r *http.Request) Solicitante {
	s, _ := SolicitanteDoContexto(r.Context())
	return s
}
