package consumo

import (
	"context"
	"fmt"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/gestaofrota/api-combustivel/internal/notificacao"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ListadorContratos interface {
	ListarAtivos(ctx context.Context, setor string, ordem contrato.Ordenacao) ([]contrato.ContratoCombustivel, error)
}

// Servico carrega os contratos ativos visíveis e roda a Calculadora.
type Servico struct {
	Contratos   ListadorContratos
	Calculadora Calculadora
}

func NovoServico(contratos ListadorContratos, buscador Buscador) *Servico {
	return &Servico{Contratos: contratos, Calculadora: Calculadora{Buscador: buscador}}
}

func (s *Servico) Relatorio(ctx context.Context, quem auth.Solicitante, filtroSetor string, ordem contrato.Ordenacao) (*Resultado, error) {
	contratos, err := s.Contratos.ListarAtivos(ctx, quem.SetorVisivel(filtroSetor), ordem)
	if err != nil {
		return nil, err
	}
	return s.Calculadora.Calcular(ctx, contratos, quem, filtroSetor)
}

// AcimaDoLimite devolve as linhas com percentual consumido >= limite.
func AcimaDoLimite(res *Resultado, limite decimal.Decimal) []Linha {
	out := []Linha{}
	for _, l := range res.Linhas() {
		if l.QuantidadeContratada.IsPositive() && l.PercentualConsumido.GreaterThanOrEqual(limite) {
			out = append(out, l)
		}
	}
	return out
}

type AlertaEnviado struct {
	Linha
	Enviado bool   `json:"enviado"`
	Erro    string `json:"erro,omitempty"`
}

// NotificarAlertas manda um alerta por linha acima do limite. Falha de envio
// de uma linha não impede as demais.
func (s *Servico) NotificarAlertas(ctx context.Context, quem auth.Solicitante, limite decimal.Decimal, n notificacao.Notificador) ([]AlertaEnviado, error) {
	res, err := s.Relatorio(ctx, quem, "", contrato.OrdemInicio)
	if err != nil {
		return nil, err
	}

	out := []AlertaEnviado{}
	for _, l := range AcimaDoLimite(res, limite) {
		a := AlertaEnviado{Linha: l, Enviado: true}
		err := n.EnviarAlertaConsumo(ctx, notificacao.AlertaConsumo{
			Mensagem: fmt.Sprintf("Contrato %s (%s): %s%% do %s consumido",
				l.NumeroContrato, l.Fornecedor, l.PercentualConsumido.StringFixed(1), l.TipoCombustivel),
			ContratoID:           l.ContratoID,
			NumeroContrato:       l.NumeroContrato,
			Fornecedor:           l.Fornecedor,
			TipoCombustivel:      l.TipoCombustivel,
			QuantidadeContratada: l.QuantidadeContratada,
			QuantidadeConsumida:  l.QuantidadeConsumida,
			PercentualConsumido:  l.PercentualConsumido,
		})
		if err != nil {
			log.Warn().Err(err).Uint("contrato_id", l.ContratoID).Uint("item_id", l.ItemID).Msg("falha ao enviar alerta de consumo")
			a.Enviado = false
			a.Erro = err.Error()
		}
		out = append(out, a)
	}
	return out, nil
}
