package abastecimento

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Filtro das listagens e relatórios. Campos zerados não filtram.
type Filtro struct {
	Inicio      *time.Time
	Fim         *time.Time
	VeiculoID   uint
	MotoristaID uint
	Combustivel string
	MinLitros   *decimal.Decimal
	MaxLitros   *decimal.Decimal
	Setor       string
}

// ParseFiltro lê a query string. Valores inválidos são ignorados.
// data_fim vale até o fim do dia.
func ParseFiltro(q url.Values) Filtro {
	var f Filtro
	if t, err := utils.ParseDataHora(q.Get("data_inicio")); err == nil {
		ini := utils.InicioDoDia(t)
		f.Inicio = &ini
	}
	if t, err := utils.ParseDataHora(q.Get("data_fim")); err == nil {
		fim := utils.FimDoDia(t)
		f.Fim = &fim
	}
	if id, err := strconv.ParseUint(q.Get("veiculo_id"), 10, 64); err == nil {
		f.VeiculoID = uint(id)
	}
	if id, err := strconv.ParseUint(q.Get("motorista_id"), 10, 64); err == nil {
		f.MotoristaID = uint(id)
	}
	f.Combustivel = strings.TrimSpace(q.Get("combustivel"))
	if d, err := decimal.NewFromString(q.Get("min_litros")); err == nil {
		f.MinLitros = &d
	}
	if d, err := decimal.NewFromString(q.Get("max_litros")); err == nil {
		f.MaxLitros = &d
	}
	f.Setor = strings.TrimSpace(q.Get("setor"))
	return f
}

// Descricao lista os filtros aplicados, para cabeçalho de exportação.
func (f Filtro) Descricao() []string {
	var out []string
	if f.Inicio != nil {
		out = append(out, "Data inicial: "+f.Inicio.Format("02/01/2006"))
	}
	if f.Fim != nil {
		out = append(out, "Data final: "+f.Fim.Format("02/01/2006"))
	}
	if f.VeiculoID != 0 {
		out = append(out, "Veículo: "+strconv.FormatUint(uint64(f.VeiculoID), 10))
	}
	if f.MotoristaID != 0 {
		out = append(out, "Motorista: "+strconv.FormatUint(uint64(f.MotoristaID), 10))
	}
	if f.Combustivel != "" {
		out = append(out, "Combustível: "+f.Combustivel)
	}
	if f.MinLitros != nil {
		out = append(out, "Litros mínimos: "+f.MinLitros.String())
	}
	if f.MaxLitros != nil {
		out = append(out, "Litros máximos: "+f.MaxLitros.String())
	}
	if f.Setor != "" {
		out = append(out, "Setor: "+f.Setor)
	}
	return out
}

// aplicar monta os WHERE. Espera a query já com JOIN em veiculos.
func (f Filtro) aplicar(q *gorm.DB) *gorm.DB {
	if f.Inicio != nil {
		q = q.Where("abastecimentos.data >= ?", *f.Inicio)
	}
	if f.Fim != nil {
		q = q.Where("abastecimentos.data <= ?", *f.Fim)
	}
	if f.VeiculoID != 0 {
		q = q.Where("abastecimentos.veiculo_id = ?", f.VeiculoID)
	}
	if f.MotoristaID != 0 {
		q = q.Where("abastecimentos.motorista_id = ?", f.MotoristaID)
	}
	if f.Combustivel != "" {
		q = q.Where("veiculos.combustivel = ?", f.Combustivel)
	}
	if f.MinLitros != nil {
		q = q.Where("abastecimentos.litros >= ?", *f.MinLitros)
	}
	if f.MaxLitros != nil {
		q = q.Where("abastecimentos.litros <= ?", *f.MaxLitros)
	}
	if f.Setor != "" {
		q = q.Where("veiculos.tipo = ?", f.Setor)
	}
	return q
}
