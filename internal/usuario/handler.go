package usuario

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/notificacao"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Sessoes    *auth.Sessoes
	Remetente  notificacao.Remetente
}

func NewHandler(db *gorm.DB, sessoes *auth.Sessoes, remetente notificacao.Remetente) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Sessoes:    sessoes,
		Remetente:  remetente,
	}
}

func solicitanteDe(u *Usuario) auth.Solicitante {
	return auth.Solicitante{
		UsuarioID: u.ID,
		Nome:      u.Nome,
		Admin:     u.IsAdmin(),
		Setor:     u.SetorOuVazio(),
	}
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	u, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil || !utils.CheckSenha(u.SenhaHash, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if err := h.Sessoes.IssueTokensOnLogin(w, solicitanteDe(u)); err != nil {
		log.Error().Err(err).Uint("user_id", u.ID).Msg("falha ao emitir tokens")
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	log.Info().Uint("user_id", u.ID).Msg("login")
}

// POST /auth/recuperar-senha
// Sempre responde 202 para não revelar se o e-mail existe.
func (h *Handler) RecuperarSenha(w http.ResponseWriter, r *http.Request) {
	var req RecuperarSenhaRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	if err := h.recuperar(r, req.Email); err != nil {
		log.Warn().Err(err).Msg("recuperação de senha não concluída")
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) recuperar(r *http.Request, email string) error {
	u, err := h.Repository.BuscarPorEmail(h.DB, email)
	if err != nil {
		return err
	}
	temp, err := utils.GerarSenhaTemporaria()
	if err != nil {
		return err
	}
	hash, err := utils.HashSenha(temp)
	if err != nil {
		return err
	}
	u.SenhaHash = hash
	u.PrecisaRedefinirSenha = true
	if err := h.Repository.Salvar(h.DB, u); err != nil {
		return err
	}
	return h.Remetente.EnviarSenhaTemporaria(r.Context(), u.Email, u.Nome, temp)
}

// GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	quem := auth.SolicitanteDe(r)
	u, err := h.Repository.BuscarPorID(h.DB, quem.UsuarioID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// PUT /me/senha
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	var req AlterarSenhaRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	quem := auth.SolicitanteDe(r)
	u, err := h.Repository.BuscarPorID(h.DB, quem.UsuarioID)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if !utils.CheckSenha(u.SenhaHash, req.SenhaAtual) {
		http.Error(w, "senha atual incorreta", http.StatusUnauthorized)
		return
	}
	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	u.SenhaHash = hash
	u.PrecisaRedefinirSenha = false
	if err := h.Repository.Salvar(h.DB, u); err != nil {
		log.Error().Err(err).Uint("user_id", u.ID).Msg("falha ao alterar senha")
		http.Error(w, "erro ao alterar senha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /usuarios
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar usuários")
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// GET /usuarios/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	u, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// aplicar copia o request para o modelo; setor só vale para departamento.
func aplicar(u *Usuario, req UsuarioRequest) error {
	u.Nome = strings.TrimSpace(req.Nome)
	u.Email = req.Email
	u.Tipo = req.Tipo
	u.Setor = nil
	if req.Tipo == TipoDepartamento {
		setor := strings.TrimSpace(req.Setor)
		if setor == "" {
			return utils.NovoErroValidacao("setor", "setor é obrigatório para usuários de departamento")
		}
		u.Setor = &setor
	}
	if req.Senha != "" {
		hash, err := utils.HashSenha(req.Senha)
		if err != nil {
			return err
		}
		u.SenhaHash = hash
	}
	return nil
}

// POST /usuarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req UsuarioRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	if req.Senha == "" {
		utils.ResponderErro(w, utils.NovoErroValidacao("senha", "campo obrigatório"))
		return
	}

	var u Usuario
	if err := aplicar(&u, req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		h.erroSalvar(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, u)
}

// PUT /usuarios/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var req UsuarioRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}

	u, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	if err := aplicar(u, req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repository.Salvar(h.DB, u); err != nil {
		h.erroSalvar(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, u)
}

func (h *Handler) erroSalvar(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrEmailEmUso) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	log.Error().Err(err).Msg("falha ao salvar usuário")
	http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
}

// DELETE /usuarios/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if uint(id) == auth.SolicitanteDe(r).UsuarioID {
		http.Error(w, "não é possível excluir o próprio usuário", http.StatusConflict)
		return
	}
	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "usuário não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao excluir usuário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /setores
func (h *Handler) ListarSetores(w http.ResponseWriter, r *http.Request) {
	setores, err := h.Repository.ListarSetores(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar setores", http.StatusInternalServerError)
		return
	}
	if setores == nil {
		setores = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(setores)
}
