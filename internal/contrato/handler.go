package contrato

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// GET /contratos-combustivel?setor=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	quem := auth.SolicitanteDe(r)
	lista, err := h.Repo.ListarAtivos(r.Context(), quem.SetorVisivel(r.URL.Query().Get("setor")), OrdemCriacao)
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar contratos")
		http.Error(w, "Erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	if lista == nil {
		lista = []ContratoCombustivel{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

// Carregar busca o contrato ativo do path {id} respeitando o setor do solicitante.
func (h *Handler) Carregar(w http.ResponseWriter, r *http.Request) (*ContratoCombustivel, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil, false
	}
	c, err := h.Repo.BuscarAtivoPorID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrContratoNaoEncontrado) {
			http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			return nil, false
		}
		log.Error().Err(err).Int("contrato_id", id).Msg("falha ao buscar contrato")
		http.Error(w, "Erro ao buscar contrato", http.StatusInternalServerError)
		return nil, false
	}
	if c.Setor != nil && !auth.SolicitanteDe(r).PodeVerSetor(*c.Setor) {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return nil, false
	}
	return c, true
}

// GET /contratos-combustivel/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Carregar(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// POST /contratos-combustivel
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req ContratoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	c, err := req.ParaModelo(auth.SolicitanteDe(r))
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repo.Criar(r.Context(), c); err != nil {
		log.Error().Err(err).Msg("falha ao criar contrato")
		http.Error(w, "Erro ao salvar contrato", http.StatusInternalServerError)
		return
	}
	log.Info().Uint("contrato_id", c.ID).Str("numero", c.NumeroContrato).Msg("contrato criado")
	utils.ResponderJSON(w, http.StatusCreated, c)
}

// PUT /contratos-combustivel/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	atual, ok := h.Carregar(w, r)
	if !ok {
		return
	}
	var req ContratoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	novo, err := req.ParaModelo(auth.SolicitanteDe(r))
	if err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repo.Substituir(r.Context(), atual.ID, novo); err != nil {
		if errors.Is(err, ErrContratoNaoEncontrado) {
			http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Uint("contrato_id", atual.ID).Msg("falha ao atualizar contrato")
		http.Error(w, "Erro ao atualizar contrato", http.StatusInternalServerError)
		return
	}

	// recarrega com os itens novos
	c, err := h.Repo.BuscarPorID(r.Context(), atual.ID)
	if err != nil {
		http.Error(w, "Erro ao carregar contrato", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c)
}

// DELETE /contratos-combustivel/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	c, ok := h.Carregar(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Desativar(r.Context(), c.ID); err != nil {
		if errors.Is(err, ErrContratoNaoEncontrado) {
			http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Uint("contrato_id", c.ID).Msg("falha ao desativar contrato")
		http.Error(w, "Erro ao excluir contrato", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
