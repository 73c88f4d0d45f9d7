package veiculo

import "github.com/shopspring/decimal"

// Veiculo da frota. Tipo guarda o setor ao qual o veículo pertence.
type Veiculo struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Placa            string           `gorm:"size:10;uniqueIndex;not null" json:"placa"`
	Tipo             string           `gorm:"size:100;not null;index" json:"tipo"`
	Combustivel      string           `gorm:"size:20;not null" json:"combustivel"`
	CapacidadeTanque *decimal.Decimal `gorm:"type:decimal(8,2)" json:"capacidadeTanque"`
}

func (Veiculo) TableName() string { return "veiculos" }

type VeiculoRequest struct {
	Placa            string           `json:"placa" validate:"required,max=10"`
	Tipo             string           `json:"tipo" validate:"max=100"`
	Combustivel      string           `json:"combustivel" validate:"required,combustivel"`
	CapacidadeTanque *decimal.Decimal `json:"capacidadeTanque" validate:"omitempty,gt=0"`
}
