package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID  uint   `json:"userId"`
	Nome    string `json:"nome"`
	IsAdmin bool   `json:"isAdmin"`
	Setor   string `json:"setor,omitempty"`
	jwt.RegisteredClaims
}

// Emissor assina e valida os access tokens (HS256).
type Emissor struct {
	segredo []byte
	ttl     time.Duration
}

func NovoEmissor(segredo string, ttl time.Duration) *Emissor {
	return &Emissor{segredo: []byte(segredo), ttl: ttl}
}

func (e *Emissor) TTL() time.Duration { return e.ttl }

// GerarToken gera um access token para o solicitante.
func (e *Emissor) GerarToken(s Solicitante) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  s.UsuarioID,
		Nome:    s.Nome,
		IsAdmin: s.Admin,
		Setor:   s.Setor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(s.UsuarioID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.segredo)
}

// ValidarToken valida o token e retorna o solicitante
func (e *Emissor) ValidarToken(tokenStr string) (Solicitante, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return e.segredo, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Solicitante{}, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Solicitante{}, errors.New("não foi possível extrair claims")
	}
	return Solicitante{
		UsuarioID: claims.UserID,
		Nome:      claims.Nome,
		Admin:     claims.IsAdmin,
		Setor:     claims.Setor,
	}, nil
}
