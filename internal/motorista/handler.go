package motorista

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /motoristas?setor=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	quem := auth.SolicitanteDe(r)

	var lista []Motorista
	var err error
	if !quem.Admin && quem.Setor != "" {
		lista, err = h.Repo.ListarDoSetor(quem.Setor)
	} else {
		lista, err = h.Repo.ListarTodos(r.URL.Query().Get("setor"))
	}
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar motoristas")
		http.Error(w, "Erro ao listar motoristas", http.StatusInternalServerError)
		return
	}
	if lista == nil {
		lista = []Motorista{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*Motorista, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil, false
	}
	m, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Motorista não encontrado", http.StatusNotFound)
		return nil, false
	}

	quem := auth.SolicitanteDe(r)
	if !quem.Admin && quem.Setor != "" {
		ok, err := h.Repo.AtendeSetor(m, quem.Setor)
		if err != nil {
			log.Error().Err(err).Uint("motorista_id", m.ID).Msg("falha ao verificar setor do motorista")
			http.Error(w, "Erro ao buscar motorista", http.StatusInternalServerError)
			return nil, false
		}
		if !ok {
			http.Error(w, "Motorista não encontrado", http.StatusNotFound)
			return nil, false
		}
	}
	return m, true
}

// GET /motoristas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	m, ok := h.carregar(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

func aplicar(m *Motorista, req MotoristaRequest, quem auth.Solicitante) {
	m.NomeCompleto = strings.TrimSpace(req.NomeCompleto)
	m.Documento = req.Documento
	m.Observacoes = req.Observacoes

	setor := strings.TrimSpace(req.Setor)
	if !quem.Admin && quem.Setor != "" {
		setor = quem.Setor
	}
	m.Setor = nil
	if setor != "" {
		m.Setor = &setor
	}
}

// POST /motoristas
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req MotoristaRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	var m Motorista
	aplicar(&m, req, auth.SolicitanteDe(r))
	if err := h.Repo.Salvar(&m); err != nil {
		h.erroSalvar(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, m)
}

// PUT /motoristas/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	m, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req MotoristaRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	aplicar(m, req, auth.SolicitanteDe(r))
	if err := h.Repo.Salvar(m); err != nil {
		h.erroSalvar(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, m)
}

func (h *Handler) erroSalvar(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrDocumentoEmUso) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	log.Error().Err(err).Msg("falha ao salvar motorista")
	http.Error(w, "Erro ao salvar motorista", http.StatusInternalServerError)
}

// DELETE /motoristas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	m, ok := h.carregar(w, r)
	if !ok {
		return
	}
	err := h.Repo.Deletar(m.ID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, ErrMotoristaEmUso):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Motorista não encontrado", http.StatusNotFound)
	default:
		log.Error().Err(err).Uint("motorista_id", m.ID).Msg("falha ao excluir motorista")
		http.Error(w, "Erro ao excluir motorista", http.StatusInternalServerError)
	}
}
