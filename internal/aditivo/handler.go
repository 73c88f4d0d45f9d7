package aditivo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Handler struct {
	Repo      *Repository
	Contratos *contrato.Handler
}

func NewHandler(repo *Repository, contratos *contrato.Handler) *Handler {
	return &Handler{Repo: repo, Contratos: contratos}
}

// GET /contratos-combustivel/{id}/aditivos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Contratos.Carregar(w, r)
	if !ok {
		return
	}
	lista, err := h.Repo.ListarPorContrato(r.Context(), c.ID)
	if err != nil {
		log.Error().Err(err).Uint("contrato_id", c.ID).Msg("falha ao listar aditivos")
		http.Error(w, "Erro ao listar aditivos", http.StatusInternalServerError)
		return
	}
	if lista == nil {
		lista = []Aditivo{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

func aplicar(a *Aditivo, req AditivoRequest) error {
	tipo := req.TipoAditivo()
	if tipo == "" {
		return utils.NovoErroValidacao("tipoAditivo", "selecione pelo menos uma modificação")
	}
	a.TipoAditivo = tipo
	a.Descricao = req.Descricao
	a.NovoValorTotal = req.NovoValorTotal
	a.NovaQuantidadeTotal = req.NovaQuantidadeTotal
	a.DiasAdicionais = req.DiasAdicionais

	a.DataAditivo = utils.InicioDoDia(time.Now())
	if req.DataAditivo != "" {
		d, err := utils.ParseDataHora(req.DataAditivo)
		if err != nil {
			return utils.NovoErroValidacao("dataAditivo", "data inválida")
		}
		a.DataAditivo = utils.InicioDoDia(d)
	}

	a.NovaDataFim = nil
	if req.NovaDataFim != "" {
		d, err := utils.ParseDataHora(req.NovaDataFim)
		if err != nil {
			return utils.NovoErroValidacao("novaDataFim", "data inválida")
		}
		d = utils.InicioDoDia(d)
		a.NovaDataFim = &d
	}
	return nil
}

// POST /contratos-combustivel/{id}/aditivos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Contratos.Carregar(w, r)
	if !ok {
		return
	}
	var req AditivoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	a := Aditivo{ContratoID: c.ID}
	if err := aplicar(&a, req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repo.Salvar(r.Context(), &a); err != nil {
		log.Error().Err(err).Uint("contrato_id", c.ID).Msg("falha ao salvar aditivo")
		http.Error(w, "Erro ao salvar aditivo", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, a)
}

func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*Aditivo, bool) {
	c, ok := h.Contratos.Carregar(w, r)
	if !ok {
		return nil, false
	}
	aid, err := strconv.Atoi(mux.Vars(r)["aid"])
	if err != nil {
		http.Error(w, "ID de aditivo inválido", http.StatusBadRequest)
		return nil, false
	}
	a, err := h.Repo.Buscar(r.Context(), c.ID, uint(aid))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Aditivo não encontrado para esse contrato", http.StatusNotFound)
			return nil, false
		}
		http.Error(w, "Erro ao buscar aditivo", http.StatusInternalServerError)
		return nil, false
	}
	return a, true
}

// PUT /contratos-combustivel/{id}/aditivos/{aid}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	a, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req AditivoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	if err := aplicar(a, req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repo.Salvar(r.Context(), a); err != nil {
		log.Error().Err(err).Uint("aditivo_id", a.ID).Msg("falha ao atualizar aditivo")
		http.Error(w, "Erro ao atualizar aditivo", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, a)
}

// DELETE /contratos-combustivel/{id}/aditivos/{aid}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	a, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Deletar(r.Context(), a); err != nil {
		http.Error(w, "Erro ao excluir aditivo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
