// Package consumo apura quanto de cada item de contrato de combustível já foi
// consumido pelos abastecimentos.
//
// Um abastecimento conta para um item quando cai na vigência do contrato e
// (a) o veículo usa o combustível do item, ou (b) o abastecimento foi vinculado
// explicitamente ao contrato. Quem atende aos dois critérios conta uma vez só.
package consumo

import (
	"context"
	"fmt"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/abastecimento"
	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/shopspring/decimal"
)

var cem = decimal.NewFromInt(100)

// Buscador é a consulta de abastecimentos usada pelo cálculo.
// setor vazio não restringe; senão filtra pelo setor do veículo.
type Buscador interface {
	PorCombustivel(ctx context.Context, tipo string, inicio, fim time.Time, setor string) ([]abastecimento.Abastecimento, error)
	PorContrato(ctx context.Context, contratoID uint, inicio, fim time.Time, setor string) ([]abastecimento.Abastecimento, error)
}

// Linha é o consumo de um item de contrato.
type Linha struct {
	ContratoID           uint            `json:"contratoId"`
	ItemID               uint            `json:"itemId"`
	NumeroContrato       string          `json:"numeroContrato"`
	AnoContrato          int             `json:"anoContrato"`
	Fornecedor           string          `json:"fornecedor"`
	DataInicio           time.Time       `json:"dataInicio"`
	DataFim              time.Time       `json:"dataFim"`
	TipoCombustivel      string          `json:"tipoCombustivel"`
	QuantidadeContratada decimal.Decimal `json:"quantidadeContratada"`
	ValorContratado      decimal.Decimal `json:"valorContratado"`
	ValorPorLitro        decimal.Decimal `json:"valorPorLitro"`
	QuantidadeConsumida  decimal.Decimal `json:"quantidadeConsumida"`
	ValorConsumido       decimal.Decimal `json:"valorConsumido"`
	QuantidadeRestante   decimal.Decimal `json:"quantidadeRestante"`
	ValorRestante        decimal.Decimal `json:"valorRestante"`
	PercentualConsumido  decimal.Decimal `json:"percentualConsumido"`
	Abastecimentos       int             `json:"abastecimentos"`
}

// ContratoConsumo agrupa as linhas de um contrato, na ordem dos itens.
type ContratoConsumo struct {
	ContratoID     uint      `json:"contratoId"`
	NumeroContrato string    `json:"numeroContrato"`
	AnoContrato    int       `json:"anoContrato"`
	Fornecedor     string    `json:"fornecedor"`
	Setor          *string   `json:"setor"`
	DataInicio     time.Time `json:"dataInicio"`
	DataFim        time.Time `json:"dataFim"`
	Itens          []Linha   `json:"itens"`
}

type Resultado struct {
	Contratos            []ContratoConsumo `json:"contratos"`
	TotalContratosAtivos int               `json:"totalContratosAtivos"`
	TotalValorContratado decimal.Decimal   `json:"totalValorContratado"`
	TotalValorConsumido  decimal.Decimal   `json:"totalValorConsumido"`
	TotalValorRestante   decimal.Decimal   `json:"totalValorRestante"`
}

// Linhas achata o resultado na ordem contrato, item.
func (r *Resultado) Linhas() []Linha {
	var out []Linha
	for _, c := range r.Contratos {
		out = append(out, c.Itens...)
	}
	return out
}

// Janela devolve a vigência do contrato em loc: do início do primeiro dia ao
// último nanossegundo do último dia.
func Janela(c contrato.ContratoCombustivel, loc *time.Location) (time.Time, time.Time) {
	ini := c.DataInicioContrato
	fim := c.DataFimContrato
	return time.Date(ini.Year(), ini.Month(), ini.Day(), 0, 0, 0, 0, loc),
		time.Date(fim.Year(), fim.Month(), fim.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), loc)
}

// Calculadora aplica a regra de consumo. Não grava nada.
type Calculadora struct {
	Buscador Buscador
	// Local é o fuso das datas de vigência; nil usa time.Local.
	Local *time.Location
}

// Calcular processa os contratos na ordem recebida. Qualquer erro de consulta
// interrompe o cálculo inteiro.
func (c Calculadora) Calcular(ctx context.Context, contratos []contrato.ContratoCombustivel, quem auth.Solicitante, filtroSetor string) (*Resultado, error) {
	loc := c.Local
	if loc == nil {
		loc = time.Local
	}
	setor := quem.SetorVisivel(filtroSetor)

	res := &Resultado{
		Contratos:            make([]ContratoConsumo, 0, len(contratos)),
		TotalContratosAtivos: len(contratos),
		TotalValorContratado: decimal.Zero,
		TotalValorConsumido:  decimal.Zero,
		TotalValorRestante:   decimal.Zero,
	}

	for _, ct := range contratos {
		ini, fim := Janela(ct, loc)
		cc := ContratoConsumo{
			ContratoID:     ct.ID,
			NumeroContrato: ct.NumeroContrato,
			AnoContrato:    ct.AnoContrato,
			Fornecedor:     ct.Fornecedor,
			Setor:          ct.Setor,
			DataInicio:     ini,
			DataFim:        fim,
			Itens:          make([]Linha, 0, len(ct.Itens)),
		}

		for _, it := range ct.Itens {
			eventos, err := c.eventosDoItem(ctx, ct.ID, it.TipoCombustivel, ini, fim, setor)
			if err != nil {
				return nil, fmt.Errorf("consumo do contrato %d, item %d: %w", ct.ID, it.ID, err)
			}
			l := linha(ct, it, ini, fim, eventos)
			cc.Itens = append(cc.Itens, l)

			res.TotalValorContratado = res.TotalValorContratado.Add(l.ValorContratado)
			res.TotalValorConsumido = res.TotalValorConsumido.Add(l.ValorConsumido)
			res.TotalValorRestante = res.TotalValorRestante.Add(l.ValorRestante)
		}
		res.Contratos = append(res.Contratos, cc)
	}
	return res, nil
}

// eventosDoItem une os conjuntos por combustível e por vínculo, sem repetir ID.
func (c Calculadora) eventosDoItem(ctx context.Context, contratoID uint, tipo string, ini, fim time.Time, setor string) ([]abastecimento.Abastecimento, error) {
	porTipo, err := c.Buscador.PorCombustivel(ctx, tipo, ini, fim, setor)
	if err != nil {
		return nil, err
	}
	porContrato, err := c.Buscador.PorContrato(ctx, contratoID, ini, fim, setor)
	if err != nil {
		return nil, err
	}

	vistos := make(map[uint]struct{}, len(porTipo)+len(porContrato))
	uniao := make([]abastecimento.Abastecimento, 0, len(porTipo)+len(porContrato))
	for _, conjunto := range [][]abastecimento.Abastecimento{porTipo, porContrato} {
		for _, a := range conjunto {
			if _, ok := vistos[a.ID]; ok {
				continue
			}
			vistos[a.ID] = struct{}{}
			uniao = append(uniao, a)
		}
	}
	return uniao, nil
}

func linha(ct contrato.ContratoCombustivel, it contrato.Item, ini, fim time.Time, eventos []abastecimento.Abastecimento) Linha {
	litros, valor := decimal.Zero, decimal.Zero
	for _, a := range eventos {
		litros = litros.Add(a.Litros)
		valor = valor.Add(a.ValorTotal)
	}

	pct := decimal.Zero
	if it.Quantidade.IsPositive() {
		pct = litros.Div(it.Quantidade).Mul(cem).Round(2)
	}

	return Linha{
		ContratoID:           ct.ID,
		ItemID:               it.ID,
		NumeroContrato:       ct.NumeroContrato,
		AnoContrato:          ct.AnoContrato,
		Fornecedor:           ct.Fornecedor,
		DataInicio:           ini,
		DataFim:              fim,
		TipoCombustivel:      it.TipoCombustivel,
		QuantidadeContratada: it.Quantidade,
		ValorContratado:      it.ValorTotal,
		ValorPorLitro:        it.ValorPorLitro,
		QuantidadeConsumida:  litros,
		ValorConsumido:       valor,
		QuantidadeRestante:   decimal.Max(decimal.Zero, it.Quantidade.Sub(litros)),
		ValorRestante:        decimal.Max(decimal.Zero, it.ValorTotal.Sub(valor)),
		PercentualConsumido:  pct,
		Abastecimentos:       len(eventos),
	}
}
