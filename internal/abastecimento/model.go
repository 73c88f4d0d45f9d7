package abastecimento

import (
	"time"

	"github.com/gestaofrota/api-combustivel/internal/motorista"
	"github.com/gestaofrota/api-combustivel/internal/veiculo"
	"github.com/shopspring/decimal"
)

type Abastecimento struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	Data        time.Time            `gorm:"not null;index" json:"data"`
	VeiculoID   uint                 `gorm:"not null;index" json:"veiculoId"`
	Veiculo     *veiculo.Veiculo     `gorm:"foreignKey:VeiculoID" json:"veiculo,omitempty"`
	MotoristaID uint                 `gorm:"not null;index" json:"motoristaId"`
	Motorista   *motorista.Motorista `gorm:"foreignKey:MotoristaID" json:"motorista,omitempty"`
	Hodometro   int                  `gorm:"not null" json:"hodometro"`
	Litros      decimal.Decimal      `gorm:"type:decimal(14,3);not null" json:"litros"`
	ValorTotal  decimal.Decimal      `gorm:"type:decimal(14,2);not null" json:"valorTotal"`
	NumeroNota  string               `gorm:"size:50" json:"numeroNota"`
	Observacoes string               `gorm:"type:text" json:"observacoes"`
	// cópia do combustível do veículo no momento do registro
	Combustivel string `gorm:"size:20" json:"combustivel"`
	ContratoID  *uint  `gorm:"index" json:"contratoId"`
}

func (Abastecimento) TableName() string { return "abastecimentos" }

// PrecoPorLitro devolve valor/litros, ou zero quando não há litros.
func (a Abastecimento) PrecoPorLitro() decimal.Decimal {
	if !a.Litros.IsPositive() {
		return decimal.Zero
	}
	return a.ValorTotal.Div(a.Litros).Round(3)
}

type AbastecimentoRequest struct {
	Data        string          `json:"data" validate:"required"`
	VeiculoID   uint            `json:"veiculoId" validate:"required"`
	MotoristaID uint            `json:"motoristaId" validate:"required"`
	Hodometro   int             `json:"hodometro" validate:"gte=0"`
	Litros      decimal.Decimal `json:"litros" validate:"gt=0"`
	ValorTotal  decimal.Decimal `json:"valorTotal" validate:"gte=0"`
	NumeroNota  string          `json:"numeroNota" validate:"max=50"`
	Observacoes string          `json:"observacoes"`
	ContratoID  *uint           `json:"contratoId"`
}
