package veiculo

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

// GET /veiculos?setor=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	quem := auth.SolicitanteDe(r)
	lista, err := h.Repo.Listar(quem.SetorVisivel(r.URL.Query().Get("setor")))
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar veículos")
		http.Error(w, "Erro ao listar veículos", http.StatusInternalServerError)
		return
	}
	if lista == nil {
		lista = []Veiculo{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// carregar busca o veículo do path e confere se o solicitante pode vê-lo.
func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*Veiculo, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil, false
	}
	v, err := h.Repo.BuscarPorID(uint(id))
	if err != nil || !auth.SolicitanteDe(r).PodeVerSetor(v.Tipo) {
		http.Error(w, "Veículo não encontrado", http.StatusNotFound)
		return nil, false
	}
	return v, true
}

// GET /veiculos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	v, ok := h.carregar(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// aplicar copia o request; usuário de departamento sempre grava no próprio setor.
func aplicar(v *Veiculo, req VeiculoRequest, quem auth.Solicitante) error {
	v.Placa = req.Placa
	v.Combustivel = req.Combustivel
	v.CapacidadeTanque = req.CapacidadeTanque
	v.Tipo = strings.TrimSpace(req.Tipo)
	if !quem.Admin && quem.Setor != "" {
		v.Tipo = quem.Setor
	}
	if v.Tipo == "" {
		return utils.NovoErroValidacao("tipo", "campo obrigatório")
	}
	return nil
}

// POST /veiculos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req VeiculoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	var v Veiculo
	if err := aplicar(&v, req, auth.SolicitanteDe(r)); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repo.Criar(&v); err != nil {
		h.erroSalvar(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, v)
}

// PUT /veiculos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	v, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req VeiculoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	if err := aplicar(v, req, auth.SolicitanteDe(r)); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repo.Atualizar(v); err != nil {
		h.erroSalvar(w, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, v)
}

func (h *Handler) erroSalvar(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrPlacaEmUso) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	log.Error().Err(err).Msg("falha ao salvar veículo")
	http.Error(w, "Erro ao salvar veículo", http.StatusInternalServerError)
}

// DELETE /veiculos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	v, ok := h.carregar(w, r)
	if !ok {
		return
	}
	err := h.Repo.Deletar(v.ID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, ErrVeiculoEmUso):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Veículo não encontrado", http.StatusNotFound)
	default:
		log.Error().Err(err).Uint("veiculo_id", v.ID).Msg("falha ao excluir veículo")
		http.Error(w, "Erro ao excluir veículo", http.StatusInternalServerError)
	}
}
