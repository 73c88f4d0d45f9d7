package consumo

import (
	"net/http"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/gestaofrota/api-combustivel/internal/notificacao"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Servico     *Servico
	Notificador notificacao.Notificador
	// percentual a partir do qual um item gera alerta
	LimiteAlerta decimal.Decimal
}

func NewHandler(s *Servico, n notificacao.Notificador, limite float64) *Handler {
	return &Handler{Servico: s, Notificador: n, LimiteAlerta: decimal.NewFromFloat(limite)}
}

// GET /contratos-combustivel/consumo?setor=&ordem=inicio|criacao
func (h *Handler) Consumo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.Servico.Relatorio(r.Context(), auth.SolicitanteDe(r), q.Get("setor"), contrato.ParseOrdenacao(q.Get("ordem")))
	if err != nil {
		log.Error().Err(err).Msg("falha ao calcular consumo dos contratos")
		http.Error(w, "Erro ao calcular consumo dos contratos", http.StatusInternalServerError)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, res)
}

// POST /contratos-combustivel/alertas
func (h *Handler) Alertas(w http.ResponseWriter, r *http.Request) {
	enviados, err := h.Servico.NotificarAlertas(r.Context(), auth.SolicitanteDe(r), h.LimiteAlerta, h.Notificador)
	if err != nil {
		log.Error().Err(err).Msg("falha ao apurar alertas de consumo")
		http.Error(w, "Erro ao apurar alertas de consumo", http.StatusInternalServerError)
		return
	}
	log.Info().Int("alertas", len(enviados)).Str("limite", h.LimiteAlerta.String()).Msg("alertas de consumo processados")
	utils.ResponderJSON(w, http.StatusOK, enviados)
}
