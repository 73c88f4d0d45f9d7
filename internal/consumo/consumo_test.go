package consumo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gestaofrota/api-combustivel/internal/abastecimento"
	"github.com/gestaofrota/api-combustivel/internal/auth"
	"github.com/gestaofrota/api-combustivel/internal/contrato"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evento struct {
	abastecimento.Abastecimento
	combustivelVeiculo string
	setor              string
}

// fakeBuscador responde em memória, como o repositório faria.
type fakeBuscador struct {
	eventos []evento
	setores []string
	err     error
}

func (f *fakeBuscador) filtrar(ini, fim time.Time, setor string, ok func(evento) bool) []abastecimento.Abastecimento {
	out := []abastecimento.Abastecimento{}
	for _, e := range f.eventos {
		if e.Data.Before(ini) || e.Data.After(fim) {
			continue
		}
		if setor != "" && e.setor != setor {
			continue
		}
		if ok(e) {
			out = append(out, e.Abastecimento)
		}
	}
	return out
}

func (f *fakeBuscador) PorCombustivel(_ context.Context, tipo string, ini, fim time.Time, setor string) ([]abastecimento.Abastecimento, error) {
	f.setores = append(f.setores, setor)
	if f.err != nil {
		return nil, f.err
	}
	return f.filtrar(ini, fim, setor, func(e evento) bool { return e.combustivelVeiculo == tipo }), nil
}

func (f *fakeBuscador) PorContrato(_ context.Context, contratoID uint, ini, fim time.Time, setor string) ([]abastecimento.Abastecimento, error) {
	f.setores = append(f.setores, setor)
	if f.err != nil {
		return nil, f.err
	}
	return f.filtrar(ini, fim, setor, func(e evento) bool {
		return e.ContratoID != nil && *e.ContratoID == contratoID
	}), nil
}

var admin = auth.Solicitante{UsuarioID: 1, Admin: true}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func uptr(v uint) *uint { return &v }

func ev(id uint, data time.Time, litros, valor string, combustivel, setor string, contratoID *uint) evento {
	return evento{
		Abastecimento: abastecimento.Abastecimento{
			ID: id, Data: data, Litros: d(litros), ValorTotal: d(valor),
			Combustivel: combustivel, ContratoID: contratoID,
		},
		combustivelVeiculo: combustivel,
		setor:              setor,
	}
}

func contratoDiesel(id uint, qtd, valor string) contrato.ContratoCombustivel {
	it := contrato.NovoItem("Diesel", d(qtd), d(valor))
	it.ID = id * 10
	it.ContratoID = id
	return contrato.ContratoCombustivel{
		ID:                 id,
		NumeroContrato:     "C1",
		AnoContrato:        2024,
		Fornecedor:         "Posto Central",
		DataInicioContrato: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DataFimContrato:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Ativo:              true,
		Itens:              []contrato.Item{it},
	}
}

func calcular(t *testing.T, b Buscador, quem auth.Solicitante, filtro string, cts ...contrato.ContratoCombustivel) *Resultado {
	t.Helper()
	res, err := Calculadora{Buscador: b, Local: time.UTC}.Calcular(context.Background(), cts, quem, filtro)
	require.NoError(t, err)
	return res
}

func meioDeJaneiro() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }

func TestConsumoEventoVinculado(t *testing.T) {
	// evento vinculado ao contrato, de veículo Flex: só o vínculo faz contar
	b := &fakeBuscador{eventos: []evento{ev(1, meioDeJaneiro(), "200", "1000.00", "Flex", "Saúde", uptr(1))}}
	res := calcular(t, b, admin, "", contratoDiesel(1, "1000", "5000.00"))

	l := res.Contratos[0].Itens[0]
	assert.True(t, l.QuantidadeConsumida.Equal(d("200")))
	assert.True(t, l.ValorConsumido.Equal(d("1000")))
	assert.True(t, l.QuantidadeRestante.Equal(d("800")))
	assert.True(t, l.ValorRestante.Equal(d("4000")))
	assert.True(t, l.PercentualConsumido.Equal(d("20")))
}

func TestConsumoSomentePorCombustivel(t *testing.T) {
	b := &fakeBuscador{eventos: []evento{ev(1, meioDeJaneiro(), "200", "1000.00", "Diesel", "Saúde", nil)}}
	res := calcular(t, b, admin, "", contratoDiesel(1, "1000", "5000.00"))

	l := res.Contratos[0].Itens[0]
	assert.True(t, l.QuantidadeConsumida.Equal(d("200")))
	assert.True(t, l.QuantidadeRestante.Equal(d("800")))
	assert.True(t, l.PercentualConsumido.Equal(d("20")))
}

func TestConsumoNaoContaDuasVezes(t *testing.T) {
	b := &fakeBuscador{eventos: []evento{ev(1, meioDeJaneiro(), "200", "1000.00", "Diesel", "Saúde", uptr(1))}}
	res := calcular(t, b, admin, "", contratoDiesel(1, "1000", "5000.00"))

	l := res.Contratos[0].Itens[0]
	assert.True(t, l.QuantidadeConsumida.Equal(d("200")), l.QuantidadeConsumida.String())
	assert.True(t, l.ValorConsumido.Equal(d("1000")))
	assert.Equal(t, 1, l.Abastecimentos)
}

func TestConsumoAcimaDoContratado(t *testing.T) {
	b := &fakeBuscador{eventos: []evento{ev(1, meioDeJaneiro(), "150", "900", "Diesel", "Saúde", nil)}}
	res := calcular(t, b, admin, "", contratoDiesel(1, "100", "500"))

	l := res.Contratos[0].Itens[0]
	assert.True(t, l.QuantidadeRestante.IsZero())
	assert.True(t, l.ValorRestante.IsZero())
	assert.True(t, l.PercentualConsumido.Equal(d("150")), l.PercentualConsumido.String())
}

func TestConsumoForaDaJanela(t *testing.T) {
	b := &fakeBuscador{eventos: []evento{
		ev(1, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "200", "1000", "Diesel", "Saúde", uptr(1)),
		ev(2, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), "50", "250", "Diesel", "Saúde", nil),
		// bordas da vigência contam
		ev(3, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "10", "50", "Diesel", "Saúde", nil),
		ev(4, time.Date(2024, 1, 31, 23, 59, 59, 999000000, time.UTC), "5", "25", "Diesel", "Saúde", nil),
	}}
	res := calcular(t, b, admin, "", contratoDiesel(1, "1000", "5000"))

	l := res.Contratos[0].Itens[0]
	assert.True(t, l.QuantidadeConsumida.Equal(d("15")), l.QuantidadeConsumida.String())
	assert.Equal(t, 2, l.Abastecimentos)
}

func TestContratoSemItens(t *testing.T) {
	vazio := contratoDiesel(2, "1", "1")
	vazio.Itens = nil
	b := &fakeBuscador{eventos: []evento{ev(1, meioDeJaneiro(), "200", "1000", "Diesel", "Saúde", uptr(2))}}

	res := calcular(t, b, admin, "", vazio)
	require.Len(t, res.Contratos, 1)
	assert.NotNil(t, res.Contratos[0].Itens)
	assert.Empty(t, res.Contratos[0].Itens)
	assert.Equal(t, 1, res.TotalContratosAtivos)
	assert.True(t, res.TotalValorContratado.IsZero())
	assert.True(t, res.TotalValorConsumido.IsZero())
	assert.True(t, res.TotalValorRestante.IsZero())
	assert.Empty(t, b.setores, "sem itens não consulta nada")
}

func TestQuantidadeContratadaZero(t *testing.T) {
	ct := contratoDiesel(1, "0", "0")
	b := &fakeBuscador{eventos: []evento{ev(1, meioDeJaneiro(), "10", "50", "Diesel", "Saúde", nil)}}

	l := calcular(t, b, admin, "", ct).Contratos[0].Itens[0]
	assert.True(t, l.PercentualConsumido.IsZero())
	assert.True(t, l.QuantidadeRestante.IsZero())
	assert.True(t, l.QuantidadeConsumida.Equal(d("10")))
}

func TestTotaisEOrdem(t *testing.T) {
	c1 := contratoDiesel(1, "1000", "5000")
	c2 := contratoDiesel(2, "100", "600")
	c2.NumeroContrato = "C2"
	gas := contrato.NovoItem("Gasolina", d("50"), d("300"))
	gas.ID = 21
	c2.Itens = append(c2.Itens, gas)

	b := &fakeBuscador{eventos: []evento{
		ev(1, meioDeJaneiro(), "40", "200", "Diesel", "Saúde", nil),
		ev(2, meioDeJaneiro(), "60", "360", "Gasolina", "Saúde", nil),
	}}
	res := calcular(t, b, admin, "", c2, c1)

	// a ordem de entrada é preservada
	require.Len(t, res.Contratos, 2)
	assert.Equal(t, "C2", res.Contratos[0].NumeroContrato)
	assert.Len(t, res.Linhas(), 3)

	assert.Equal(t, 2, res.TotalContratosAtivos)
	assert.True(t, res.TotalValorContratado.Equal(d("5900")), res.TotalValorContratado.String())
	// Diesel (200) aparece nos dois contratos; Gasolina 360
	assert.True(t, res.TotalValorConsumido.Equal(d("760")), res.TotalValorConsumido.String())
	// 400 + 0 (gasolina estourou) + 4800
	assert.True(t, res.TotalValorRestante.Equal(d("5200")), res.TotalValorRestante.String())

	for _, l := range res.Linhas() {
		assert.True(t, l.QuantidadeRestante.Equal(decimal.Max(decimal.Zero, l.QuantidadeContratada.Sub(l.QuantidadeConsumida))))
		assert.True(t, l.ValorRestante.Equal(decimal.Max(decimal.Zero, l.ValorContratado.Sub(l.ValorConsumido))))
	}
}

func TestSetorDoSolicitante(t *testing.T) {
	eventos := []evento{
		ev(1, meioDeJaneiro(), "100", "500", "Diesel", "Saúde", nil),
		ev(2, meioDeJaneiro(), "30", "150", "Flex", "Obras", uptr(1)),
		ev(3, meioDeJaneiro(), "20", "100", "Diesel", "Obras", nil),
	}
	ct := contratoDiesel(1, "1000", "5000")

	b := &fakeBuscador{eventos: eventos}
	l := calcular(t, b, auth.Solicitante{UsuarioID: 2, Setor: "Saúde"}, "Obras", ct).Contratos[0].Itens[0]
	assert.True(t, l.QuantidadeConsumida.Equal(d("100")), l.QuantidadeConsumida.String())
	assert.Equal(t, []string{"Saúde", "Saúde"}, b.setores)

	b = &fakeBuscador{eventos: eventos}
	l = calcular(t, b, admin, "", ct).Contratos[0].Itens[0]
	assert.True(t, l.QuantidadeConsumida.Equal(d("150")))

	b = &fakeBuscador{eventos: eventos}
	l = calcular(t, b, admin, "Obras", ct).Contratos[0].Itens[0]
	assert.True(t, l.QuantidadeConsumida.Equal(d("50")))
	assert.Equal(t, []string{"Obras", "Obras"}, b.setores)
}

func TestErroInterrompeCalculo(t *testing.T) {
	boom := errors.New("conexão perdida")
	_, err := Calculadora{Buscador: &fakeBuscador{err: boom}}.Calcular(
		context.Background(), []contrato.ContratoCombustivel{contratoDiesel(1, "10", "10")}, admin, "")
	assert.ErrorIs(t, err, boom)
}

func TestCalculoNaoAlteraEntradas(t *testing.T) {
	ct := contratoDiesel(1, "1000", "5000")
	copia := ct
	copia.Itens = append([]contrato.Item(nil), ct.Itens...)
	b := &fakeBuscador{eventos: []evento{ev(1, meioDeJaneiro(), "200", "1000", "Diesel", "Saúde", uptr(1))}}

	calcular(t, b, admin, "", ct)
	calcular(t, b, admin, "", ct)
	assert.Equal(t, copia, ct)
}

func TestJanela(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	ini, fim := Janela(contratoDiesel(1, "1", "1"), sp)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, sp), ini)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, sp), fim)
}

func TestAcimaDoLimite(t *testing.T) {
	res := &Resultado{Contratos: []ContratoConsumo{{Itens: []Linha{
		{ItemID: 1, QuantidadeContratada: d("100"), PercentualConsumido: d("89.99")},
		{ItemID: 2, QuantidadeContratada: d("100"), PercentualConsumido: d("90")},
		{ItemID: 3, QuantidadeContratada: d("100"), PercentualConsumido: d("130")},
		{ItemID: 4, QuantidadeContratada: d("0"), PercentualConsumido: d("0")},
	}}}}
	linhas := AcimaDoLimite(res, d("90"))
	require.Len(t, linhas, 2)
	assert.Equal(t, uint(2), linhas[0].ItemID)
	assert.Equal(t, uint(3), linhas[1].ItemID)
}
