package contrato

import (
	"strings"

	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/shopspring/decimal"
)

type ItemRequest struct {
	TipoCombustivel string          `json:"tipoCombustivel" validate:"required,combustivel"`
	Quantidade      decimal.Decimal `json:"quantidade" validate:"gt=0"`
	ValorTotal      decimal.Decimal `json:"valorTotal" validate:"gte=0"`
}

type ContratoRequest struct {
	NumeroContrato     string        `json:"numeroContrato" validate:"required,max=50"`
	AnoContrato        int           `json:"anoContrato" validate:"required,gte=1900,lte=2200"`
	DataInicioContrato string        `json:"dataInicioContrato" validate:"required"`
	DataFimContrato    string        `json:"dataFimContrato" validate:"required"`
	Fornecedor         string        `json:"fornecedor" validate:"required,max=150"`
	Observacoes        string        `json:"observacoes"`
	Setor              string        `json:"setor" validate:"max=100"`
	Itens              []ItemRequest `json:"itens" validate:"required,min=1,dive"`
}

// ParaModelo converte o request. Admin escolhe o setor; departamento usa o próprio.
func (req ContratoRequest) ParaModelo(quem auth.Solicitante) (*ContratoCombustivel, error) {
	ini, err := utils.ParseDataHora(req.DataInicioContrato)
	if err != nil {
		return nil, utils.NovoErroValidacao("dataInicioContrato", "data inválida")
	}
	fim, err := utils.ParseDataHora(req.DataFimContrato)
	if err != nil {
		return nil, utils.NovoErroValidacao("dataFimContrato", "data inválida")
	}
	ini, fim = utils.InicioDoDia(ini), utils.InicioDoDia(fim)
	if fim.Before(ini) {
		return nil, utils.NovoErroValidacao("dataFimContrato", "data final anterior à data inicial")
	}

	c := &ContratoCombustivel{
		NumeroContrato:     strings.TrimSpace(req.NumeroContrato),
		AnoContrato:        req.AnoContrato,
		DataInicioContrato: ini,
		DataFimContrato:    fim,
		Fornecedor:         strings.TrimSpace(req.Fornecedor),
		Observacoes:        req.Observacoes,
		Ativo:              true,
	}

	setor := strings.TrimSpace(req.Setor)
	if !quem.Admin && quem.Setor != "" {
		setor = quem.Setor
	}
	if setor != "" {
		c.Setor = &setor
	}

	for _, it := range req.Itens {
		c.Itens = append(c.Itens, NovoItem(it.TipoCombustivel, it.Quantidade, it.ValorTotal))
	}
	return c, nil
}
