package aditivo

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TipoProrrogacao = "Prorrogação"
	TipoReajuste    = "Reajuste de Valor"
	TipoAumento     = "Aumento de Quantidade"
)

// Aditivo é apenas registro: não altera o contrato nem o cálculo de consumo.
type Aditivo struct {
	ID                  uint             `gorm:"primaryKey" json:"id"`
	ContratoID          uint             `gorm:"not null;index" json:"contratoId"`
	TipoAditivo         string           `gorm:"size:100;not null" json:"tipoAditivo"`
	Descricao           string           `gorm:"type:text" json:"descricao"`
	DataAditivo         time.Time        `gorm:"type:date;not null" json:"dataAditivo"`
	NovoValorTotal      *decimal.Decimal `gorm:"type:decimal(14,2)" json:"novoValorTotal"`
	NovaQuantidadeTotal *decimal.Decimal `gorm:"type:decimal(14,3)" json:"novaQuantidadeTotal"`
	NovaDataFim         *time.Time       `gorm:"type:date" json:"novaDataFim"`
	DiasAdicionais      *int             `json:"diasAdicionais"`
}

func (Aditivo) TableName() string { return "aditivos_contrato" }

type AditivoRequest struct {
	ModificarPrazo      bool             `json:"modificarPrazo"`
	ModificarValor      bool             `json:"modificarValor"`
	ModificarQuantidade bool             `json:"modificarQuantidade"`
	Descricao           string           `json:"descricao"`
	DataAditivo         string           `json:"dataAditivo"`
	NovoValorTotal      *decimal.Decimal `json:"novoValorTotal" validate:"omitempty,gte=0"`
	NovaQuantidadeTotal *decimal.Decimal `json:"novaQuantidadeTotal" validate:"omitempty,gt=0"`
	NovaDataFim         string           `json:"novaDataFim"`
	DiasAdicionais      *int             `json:"diasAdicionais" validate:"omitempty,gt=0"`
}

// TipoAditivo junta as modificações marcadas, na ordem prazo, valor, quantidade.
func (req AditivoRequest) TipoAditivo() string {
	var tipos []string
	if req.ModificarPrazo {
		tipos = append(tipos, TipoProrrogacao)
	}
	if req.ModificarValor {
		tipos = append(tipos, TipoReajuste)
	}
	if req.ModificarQuantidade {
		tipos = append(tipos, TipoAumento)
	}
	return strings.Join(tipos, ", ")
}
