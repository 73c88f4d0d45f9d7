// Package relatorio agrega abastecimentos para o dashboard e para os
// relatórios exportáveis (JSON, CSV e PDF).
package relatorio

import (
	"fmt"
	"sort"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/abastecimento"
	"github.com/gestaofrota/api-combustivel/internal/motorista"
	"github.com/gestaofrota/api-combustivel/internal/veiculo"
	"github.com/shopspring/decimal"
)

const (
	AgruparDia    = "dia"
	AgruparSemana = "semana"
	AgruparMes    = "mes"

	naoInformado = "Não informado"
)

// Serie é um par rótulo/litros usado nos gráficos.
type Serie struct {
	Rotulo string          `json:"rotulo"`
	Litros decimal.Decimal `json:"litros"`
}

type Indicadores struct {
	TotalLitros   decimal.Decimal `json:"totalLitros"`
	ValorTotal    decimal.Decimal `json:"valorTotal"`
	MediaLitros   decimal.Decimal `json:"mediaLitros"`
	TotalVeiculos int64           `json:"totalVeiculos"`
}

type Dashboard struct {
	Indicadores          Indicadores `json:"indicadores"`
	Agrupamento          string      `json:"agrupamento"`
	LitrosPorPeriodo     []Serie     `json:"litrosPorPeriodo"`
	TopVeiculos          []Serie     `json:"topVeiculos"`
	TopMotoristas        []Serie     `json:"topMotoristas"`
	LitrosPorCombustivel []Serie     `json:"litrosPorCombustivel"`
}

// NormalizarAgrupamento devolve dia para valores desconhecidos.
func NormalizarAgrupamento(s string) string {
	switch s {
	case AgruparSemana, AgruparMes:
		return s
	}
	return AgruparDia
}

// ChavePeriodo devolve a chave do período de t: 2006-01-02 por dia,
// 2006-W05 por semana (semanas começam no domingo, a semana 00 vai do
// início do ano até o primeiro domingo) e 2006-01 por mês.
func ChavePeriodo(t time.Time, agrupamento string) string {
	switch agrupamento {
	case AgruparSemana:
		semana := (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
		return fmt.Sprintf("%04d-W%02d", t.Year(), semana)
	case AgruparMes:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func media(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n))).Round(2)
}

func placa(a abastecimento.Abastecimento) string {
	if a.Veiculo != nil {
		return a.Veiculo.Placa
	}
	return fmt.Sprintf("Veículo %d", a.VeiculoID)
}

func nomeMotorista(a abastecimento.Abastecimento) string {
	if a.Motorista != nil {
		return a.Motorista.NomeCompleto
	}
	return fmt.Sprintf("Motorista %d", a.MotoristaID)
}

// acumulador soma litros por rótulo preservando a ordem de chegada.
type acumulador struct {
	ordem  []string
	litros map[string]decimal.Decimal
}

func novoAcumulador() *acumulador {
	return &acumulador{litros: map[string]decimal.Decimal{}}
}

func (a *acumulador) somar(rotulo string, v decimal.Decimal) {
	atual, ok := a.litros[rotulo]
	if !ok {
		a.ordem = append(a.ordem, rotulo)
	}
	a.litros[rotulo] = atual.Add(v)
}

func (a *acumulador) series() []Serie {
	out := make([]Serie, 0, len(a.ordem))
	for _, r := range a.ordem {
		out = append(out, Serie{Rotulo: r, Litros: a.litros[r]})
	}
	return out
}

// porRotulo ordena ascendente pelo rótulo.
func (a *acumulador) porRotulo() []Serie {
	out := a.series()
	sort.Slice(out, func(i, j int) bool { return out[i].Rotulo < out[j].Rotulo })
	return out
}

// top ordena por litros decrescente e corta em n. Empates seguem a ordem de chegada.
func (a *acumulador) top(n int) []Serie {
	out := a.series()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Litros.GreaterThan(out[j].Litros) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MontarDashboard calcula indicadores e séries a partir dos abastecimentos já
// filtrados. totalVeiculos vem de fora porque conta a frota, não os eventos.
func MontarDashboard(lista []abastecimento.Abastecimento, agrupamento string, totalVeiculos int64) Dashboard {
	agrupamento = NormalizarAgrupamento(agrupamento)
	periodos := novoAcumulador()
	veiculos := novoAcumulador()
	motoristas := novoAcumulador()
	combustiveis := novoAcumulador()

	totalLitros, totalValor := decimal.Zero, decimal.Zero
	for _, a := range lista {
		totalLitros = totalLitros.Add(a.Litros)
		totalValor = totalValor.Add(a.ValorTotal)
		periodos.somar(ChavePeriodo(a.Data, agrupamento), a.Litros)
		veiculos.somar(placa(a), a.Litros)
		motoristas.somar(nomeMotorista(a), a.Litros)
		tipo := naoInformado
		if a.Veiculo != nil && a.Veiculo.Combustivel != "" {
			tipo = a.Veiculo.Combustivel
		}
		combustiveis.somar(tipo, a.Litros)
	}

	return Dashboard{
		Indicadores: Indicadores{
			TotalLitros:   totalLitros.Round(2),
			ValorTotal:    totalValor,
			MediaLitros:   media(totalLitros, len(lista)),
			TotalVeiculos: totalVeiculos,
		},
		Agrupamento:          agrupamento,
		LitrosPorPeriodo:     periodos.porRotulo(),
		TopVeiculos:          veiculos.top(10),
		TopMotoristas:        motoristas.top(10),
		LitrosPorCombustivel: combustiveis.porRotulo(),
	}
}

// Totais de um grupo de abastecimentos.
type Totais struct {
	TotalLitros    decimal.Decimal `json:"totalLitros"`
	TotalValor     decimal.Decimal `json:"totalValor"`
	Abastecimentos int             `json:"abastecimentos"`
	MediaLitros    decimal.Decimal `json:"mediaLitros"`
}

func (t *Totais) somar(a abastecimento.Abastecimento) {
	t.TotalLitros = t.TotalLitros.Add(a.Litros)
	t.TotalValor = t.TotalValor.Add(a.ValorTotal)
	t.Abastecimentos++
}

func (t *Totais) fechar() {
	t.MediaLitros = media(t.TotalLitros, t.Abastecimentos)
}

type ResumoVeiculo struct {
	Veiculo veiculo.Veiculo `json:"veiculo"`
	Totais
	TopMotoristas []Serie                       `json:"topMotoristas"`
	Recentes      []abastecimento.Abastecimento `json:"recentes"`
}

type ResumoMotorista struct {
	Motorista motorista.Motorista `json:"motorista"`
	Totais
	TopVeiculos []Serie                       `json:"topVeiculos"`
	Recentes    []abastecimento.Abastecimento `json:"recentes"`
}

// recentes devolve os n abastecimentos mais novos. Não altera a entrada.
func recentes(lista []abastecimento.Abastecimento, n int) []abastecimento.Abastecimento {
	out := append([]abastecimento.Abastecimento(nil), lista...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Data.After(out[j].Data) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// PorVeiculo agrupa por veículo, ordenado pela placa.
func PorVeiculo(lista []abastecimento.Abastecimento) []ResumoVeiculo {
	type grupo struct {
		resumo     ResumoVeiculo
		eventos    []abastecimento.Abastecimento
		motoristas *acumulador
	}
	grupos := map[uint]*grupo{}
	for _, a := range lista {
		g, ok := grupos[a.VeiculoID]
		if !ok {
			g = &grupo{motoristas: novoAcumulador()}
			if a.Veiculo != nil {
				g.resumo.Veiculo = *a.Veiculo
			} else {
				g.resumo.Veiculo = veiculo.Veiculo{ID: a.VeiculoID, Placa: placa(a)}
			}
			grupos[a.VeiculoID] = g
		}
		g.resumo.somar(a)
		g.eventos = append(g.eventos, a)
		g.motoristas.somar(nomeMotorista(a), a.Litros)
	}

	out := make([]ResumoVeiculo, 0, len(grupos))
	for _, g := range grupos {
		g.resumo.fechar()
		g.resumo.TopMotoristas = g.motoristas.top(5)
		g.resumo.Recentes = recentes(g.eventos, 5)
		out = append(out, g.resumo)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Veiculo.Placa != out[j].Veiculo.Placa {
			return out[i].Veiculo.Placa < out[j].Veiculo.Placa
		}
		return out[i].Veiculo.ID < out[j].Veiculo.ID
	})
	return out
}

// PorMotorista agrupa por motorista, ordenado pelo nome.
func PorMotorista(lista []abastecimento.Abastecimento) []ResumoMotorista {
	type grupo struct {
		resumo   ResumoMotorista
		eventos  []abastecimento.Abastecimento
		veiculos *acumulador
	}
	grupos := map[uint]*grupo{}
	for _, a := range lista {
		g, ok := grupos[a.MotoristaID]
		if !ok {
			g = &grupo{veiculos: novoAcumulador()}
			if a.Motorista != nil {
				g.resumo.Motorista = *a.Motorista
			} else {
				g.resumo.Motorista = motorista.Motorista{ID: a.MotoristaID, NomeCompleto: nomeMotorista(a)}
			}
			grupos[a.MotoristaID] = g
		}
		g.resumo.somar(a)
		g.eventos = append(g.eventos, a)
		g.veiculos.somar(placa(a), a.Litros)
	}

	out := make([]ResumoMotorista, 0, len(grupos))
	for _, g := range grupos {
		g.resumo.fechar()
		g.resumo.TopVeiculos = g.veiculos.top(5)
		g.resumo.Recentes = recentes(g.eventos, 5)
		out = append(out, g.resumo)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Motorista.NomeCompleto != out[j].Motorista.NomeCompleto {
			return out[i].Motorista.NomeCompleto < out[j].Motorista.NomeCompleto
		}
		return out[i].Motorista.ID < out[j].Motorista.ID
	})
	return out
}

type ResumoAbastecimentos struct {
	Totais
	MaiorLitros     decimal.Decimal               `json:"maiorLitros"`
	MenorLitros     decimal.Decimal               `json:"menorLitros"`
	PrecoMedioLitro decimal.Decimal               `json:"precoMedioLitro"`
	Itens           []abastecimento.Abastecimento `json:"itens"`
}

// Resumir calcula os totais da listagem. Preço médio é Σvalor/Σlitros.
func Resumir(lista []abastecimento.Abastecimento) ResumoAbastecimentos {
	r := ResumoAbastecimentos{Itens: lista}
	for i, a := range lista {
		r.somar(a)
		if i == 0 || a.Litros.GreaterThan(r.MaiorLitros) {
			r.MaiorLitros = a.Litros
		}
		if i == 0 || a.Litros.LessThan(r.MenorLitros) {
			r.MenorLitros = a.Litros
		}
	}
	r.fechar()
	if r.TotalLitros.IsPositive() {
		r.PrecoMedioLitro = r.TotalValor.Div(r.TotalLitros).Round(3)
	}
	return r
}
