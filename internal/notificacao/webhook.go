package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AlertaConsumo é o payload enviado quando um item de contrato passa do limite.
type AlertaConsumo struct {
	Mensagem             string          `json:"mensagem"`
	ContratoID           uint            `json:"contratoId"`
	NumeroContrato       string          `json:"numeroContrato"`
	Fornecedor           string          `json:"fornecedor"`
	TipoCombustivel      string          `json:"tipoCombustivel"`
	QuantidadeContratada decimal.Decimal `json:"quantidadeContratada"`
	QuantidadeConsumida  decimal.Decimal `json:"quantidadeConsumida"`
	PercentualConsumido  decimal.Decimal `json:"percentualConsumido"`
}

type Notificador interface {
	EnviarAlertaConsumo(ctx context.Context, a AlertaConsumo) error
}

// Webhook posta alertas em JSON numa URL configurada (ALERTA_WEBHOOK_URL).
type Webhook struct {
	URL    string
	Client *http.Client
}

func NovoWebhook(url string) *Webhook {
	return &Webhook{URL: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (wh *Webhook) EnviarAlertaConsumo(ctx context.Context, a AlertaConsumo) error {
	if wh.URL == "" {
		log.Warn().Uint("contrato_id", a.ContratoID).Msg("ALERTA_WEBHOOK_URL não configurada, alerta descartado")
		return nil
	}
	body, err := json.Marshal(a)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := wh.Client.Do(req)
	if err != nil {
		return fmt.Errorf("enviar webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}
