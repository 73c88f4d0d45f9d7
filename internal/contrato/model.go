package contrato

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContratoCombustivel é um contrato de fornecimento com um item por combustível.
type ContratoCombustivel struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	NumeroContrato     string    `gorm:"size:50;not null" json:"numeroContrato"`
	AnoContrato        int       `gorm:"not null" json:"anoContrato"`
	DataInicioContrato time.Time `gorm:"type:date;not null" json:"dataInicioContrato"`
	DataFimContrato    time.Time `gorm:"type:date;not null" json:"dataFimContrato"`
	Fornecedor         string    `gorm:"size:150;not null" json:"fornecedor"`
	Observacoes        string    `gorm:"type:text" json:"observacoes"`
	Setor              *string   `gorm:"size:100;index" json:"setor"`
	Ativo              bool      `gorm:"not null;default:true;index" json:"ativo"`
	DataCriacao        time.Time `gorm:"autoCreateTime" json:"dataCriacao"`
	Itens              []Item    `gorm:"foreignKey:ContratoID;constraint:OnDelete:CASCADE" json:"itens"`
}

func (ContratoCombustivel) TableName() string { return "contratos_combustivel" }

// Item é a quantidade e o valor contratados de um combustível.
type Item struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ContratoID      uint            `gorm:"not null;index" json:"contratoId"`
	TipoCombustivel string          `gorm:"size:20;not null" json:"tipoCombustivel"`
	Quantidade      decimal.Decimal `gorm:"type:decimal(14,3);not null" json:"quantidade"`
	ValorTotal      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"valorTotal"`
	// calculado na criação, não é recalculado depois
	ValorPorLitro decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"valorPorLitro"`
}

func (Item) TableName() string { return "contrato_combustivel_itens" }

// NovoItem calcula o valor por litro (zero quando a quantidade é zero).
func NovoItem(tipo string, quantidade, valorTotal decimal.Decimal) Item {
	vpl := decimal.Zero
	if !quantidade.IsZero() {
		vpl = valorTotal.Div(quantidade).Round(4)
	}
	return Item{
		TipoCombustivel: tipo,
		Quantidade:      quantidade,
		ValorTotal:      valorTotal,
		ValorPorLitro:   vpl,
	}
}

func (c ContratoCombustivel) SetorOuVazio() string {
	if c.Setor == nil {
		return ""
	}
	return *c.Setor
}

func (c ContratoCombustivel) ValorTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Itens {
		total = total.Add(it.ValorTotal)
	}
	return total
}

func (c ContratoCombustivel) QuantidadeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Itens {
		total = total.Add(it.Quantidade)
	}
	return total
}
