package abastecimento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/gestaofrota/api-combustivel/internal/motorista"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/gestaofrota/api-combustivel/internal/veiculo"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Handler struct {
	Repo       *Repository
	Veiculos   *veiculo.Repository
	Motoristas *motorista.Repository
	Contratos  *contrato.Repository
}

func NewHandler(repo *Repository, veiculos *veiculo.Repository, motoristas *motorista.Repository, contratos *contrato.Repository) *Handler {
	return &Handler{Repo: repo, Veiculos: veiculos, Motoristas: motoristas, Contratos: contratos}
}

// GET /abastecimentos?data_inicio=&data_fim=&veiculo_id=&motorista_id=&combustivel=&setor=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	quem := auth.SolicitanteDe(r)
	f := ParseFiltro(r.URL.Query())
	f.Setor = quem.SetorVisivel(f.Setor)

	lista, err := h.Repo.Listar(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar abastecimentos")
		http.Error(w, "Erro ao listar abastecimentos", http.StatusInternalServerError)
		return
	}
	if lista == nil {
		lista = []Abastecimento{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lista)
}

func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*Abastecimento, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return nil, false
	}
	a, err := h.Repo.BuscarPorID(r.Context(), uint(id))
	if err != nil {
		http.Error(w, "Abastecimento não encontrado", http.StatusNotFound)
		return nil, false
	}
	if a.Veiculo != nil && !auth.SolicitanteDe(r).PodeVerSetor(a.Veiculo.Tipo) {
		http.Error(w, "Abastecimento não encontrado", http.StatusNotFound)
		return nil, false
	}
	return a, true
}

// GET /abastecimentos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	a, ok := h.carregar(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

// aplicar resolve veículo, motorista e contrato e copia o combustível do veículo.
func (h *Handler) aplicar(r *http.Request, a *Abastecimento, req AbastecimentoRequest) error {
	data, err := utils.ParseDataHora(req.Data)
	if err != nil {
		return utils.NovoErroValidacao("data", "data inválida")
	}

	v, err := h.Veiculos.BuscarPorID(req.VeiculoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NovoErroValidacao("veiculoId", "veículo não encontrado")
		}
		return err
	}
	if !auth.SolicitanteDe(r).PodeVerSetor(v.Tipo) {
		return utils.NovoErroValidacao("veiculoId", "veículo não pertence ao seu setor")
	}

	if _, err := h.Motoristas.BuscarPorID(req.MotoristaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NovoErroValidacao("motoristaId", "motorista não encontrado")
		}
		return err
	}

	if req.ContratoID != nil {
		if _, err := h.Contratos.BuscarAtivoPorID(r.Context(), *req.ContratoID); err != nil {
			if errors.Is(err, contrato.ErrContratoNaoEncontrado) {
				return utils.NovoErroValidacao("contratoId", "contrato inexistente ou inativo")
			}
			return err
		}
	}

	a.Data = data
	a.VeiculoID = v.ID
	a.MotoristaID = req.MotoristaID
	a.Hodometro = req.Hodometro
	a.Litros = req.Litros
	a.ValorTotal = req.ValorTotal
	a.NumeroNota = req.NumeroNota
	a.Observacoes = req.Observacoes
	a.Combustivel = v.Combustivel
	a.ContratoID = req.ContratoID
	a.Veiculo = nil
	a.Motorista = nil
	return nil
}

// POST /abastecimentos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req AbastecimentoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	var a Abastecimento
	if err := h.aplicar(r, &a, req); err != nil {
		log.Debug().Err(err).Msg("abastecimento recusado")
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repo.Criar(r.Context(), &a); err != nil {
		log.Error().Err(err).Msg("falha ao salvar abastecimento")
		http.Error(w, "Erro ao salvar abastecimento", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusCreated, a)
}

// PUT /abastecimentos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	a, ok := h.carregar(w, r)
	if !ok {
		return
	}
	var req AbastecimentoRequest
	if !utils.DecodificarEValidar(w, r, &req) {
		return
	}
	if err := h.aplicar(r, a, req); err != nil {
		utils.ResponderErro(w, err)
		return
	}
	if err := h.Repo.Atualizar(r.Context(), a); err != nil {
		log.Error().Err(err).Uint("abastecimento_id", a.ID).Msg("falha ao atualizar abastecimento")
		http.Error(w, "Erro ao atualizar abastecimento", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, a)
}

// DELETE /abastecimentos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	a, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if err := h.Repo.Deletar(r.Context(), a.ID); err != nil {
		log.Error().Err(err).Uint("abastecimento_id", a.ID).Msg("falha ao excluir abastecimento")
		http.Error(w, "Erro ao excluir abastecimento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
