package relatorio

import (
	"fmt"
	"strconv"

	"github.com/gestaofrota/api-combustivel/internal/consumo"
	"github.com/gestaofrota/api-combustivel/internal/utils"
)

const tituloSistema = " - SISTEMA DE GESTÃO DE COMBUSTÍVEL"

func primeiro(s []Serie) string {
	if len(s) == 0 {
		return "-"
	}
	return s[0].Rotulo
}

func totaisGerais(t Totais) [][2]string {
	return [][2]string{
		{"Total de abastecimentos:", strconv.Itoa(t.Abastecimentos)},
		{"Total de litros:", utils.FormatarLitros(t.TotalLitros)},
		{"Valor total:", utils.FormatarMoeda(t.TotalValor)},
		{"Média de litros por abastecimento:", utils.FormatarLitros(t.MediaLitros)},
	}
}

func DocumentoVeiculos(lista []ResumoVeiculo) Documento {
	d := Documento{
		Titulo:  "RELATÓRIO DE VEÍCULOS" + tituloSistema,
		Arquivo: "relatorio_veiculos",
		Resumo:  [][2]string{{"Total de veículos:", strconv.Itoa(len(lista))}},
		Colunas: []Coluna{
			{Titulo: "Placa", Largura: 25},
			{Titulo: "Setor", Largura: 40},
			{Titulo: "Combustível", Largura: 25},
			{Titulo: "Abastecimentos", Largura: 28, Alinhamento: "R"},
			{Titulo: "Total litros", Largura: 32, Alinhamento: "R"},
			{Titulo: "Valor total", Largura: 35, Alinhamento: "R"},
			{Titulo: "Média litros", Largura: 30, Alinhamento: "R"},
			{Titulo: "Motorista principal"},
		},
	}
	var geral Totais
	for _, v := range lista {
		d.Linhas = append(d.Linhas, []string{
			v.Veiculo.Placa,
			v.Veiculo.Tipo,
			v.Veiculo.Combustivel,
			strconv.Itoa(v.Abastecimentos),
			utils.FormatarLitros(v.TotalLitros),
			utils.FormatarMoeda(v.TotalValor),
			utils.FormatarLitros(v.MediaLitros),
			primeiro(v.TopMotoristas),
		})
		geral.TotalLitros = geral.TotalLitros.Add(v.TotalLitros)
		geral.TotalValor = geral.TotalValor.Add(v.TotalValor)
		geral.Abastecimentos += v.Abastecimentos
	}
	geral.fechar()
	d.Totais = totaisGerais(geral)
	return d
}

func DocumentoMotoristas(lista []ResumoMotorista) Documento {
	d := Documento{
		Titulo:  "RELATÓRIO DE MOTORISTAS" + tituloSistema,
		Arquivo: "relatorio_motoristas",
		Resumo:  [][2]string{{"Total de motoristas:", strconv.Itoa(len(lista))}},
		Colunas: []Coluna{
			{Titulo: "Motorista", Largura: 60},
			{Titulo: "Documento", Largura: 32},
			{Titulo: "Abastecimentos", Largura: 28, Alinhamento: "R"},
			{Titulo: "Total litros", Largura: 32, Alinhamento: "R"},
			{Titulo: "Valor total", Largura: 35, Alinhamento: "R"},
			{Titulo: "Média litros", Largura: 30, Alinhamento: "R"},
			{Titulo: "Veículo principal"},
		},
	}
	var geral Totais
	for _, m := range lista {
		d.Linhas = append(d.Linhas, []string{
			m.Motorista.NomeCompleto,
			m.Motorista.Documento,
			strconv.Itoa(m.Abastecimentos),
			utils.FormatarLitros(m.TotalLitros),
			utils.FormatarMoeda(m.TotalValor),
			utils.FormatarLitros(m.MediaLitros),
			primeiro(m.TopVeiculos),
		})
		geral.TotalLitros = geral.TotalLitros.Add(m.TotalLitros)
		geral.TotalValor = geral.TotalValor.Add(m.TotalValor)
		geral.Abastecimentos += m.Abastecimentos
	}
	geral.fechar()
	d.Totais = totaisGerais(geral)
	return d
}

func DocumentoAbastecimentos(r ResumoAbastecimentos) Documento {
	d := Documento{
		Titulo:  "RELATÓRIO DETALHADO DE ABASTECIMENTOS" + tituloSistema,
		Arquivo: "relatorio_abastecimentos",
		Resumo:  [][2]string{{"Total de registros:", strconv.Itoa(len(r.Itens))}},
		Colunas: []Coluna{
			{Titulo: "Data", Largura: 28},
			{Titulo: "Placa", Largura: 22},
			{Titulo: "Motorista", Largura: 50},
			{Titulo: "Combustível", Largura: 24},
			{Titulo: "Hodômetro", Largura: 24, Alinhamento: "R"},
			{Titulo: "Litros", Largura: 28, Alinhamento: "R"},
			{Titulo: "Valor", Largura: 30, Alinhamento: "R"},
			{Titulo: "R$/L", Largura: 22, Alinhamento: "R"},
			{Titulo: "Nota fiscal"},
		},
	}
	for _, a := range r.Itens {
		d.Linhas = append(d.Linhas, []string{
			a.Data.Format("02/01/2006 15:04"),
			placa(a),
			nomeMotorista(a),
			a.Combustivel,
			strconv.Itoa(a.Hodometro),
			utils.FormatarLitros(a.Litros),
			utils.FormatarMoeda(a.ValorTotal),
			utils.FormatarNumero(a.PrecoPorLitro(), 3),
			a.NumeroNota,
		})
	}
	d.Totais = totaisGerais(r.Totais)
	if len(r.Itens) > 0 {
		d.Totais = append(d.Totais,
			[2]string{"Maior abastecimento:", utils.FormatarLitros(r.MaiorLitros)},
			[2]string{"Menor abastecimento:", utils.FormatarLitros(r.MenorLitros)},
			[2]string{"Valor médio por litro:", "R$ " + utils.FormatarNumero(r.PrecoMedioLitro, 3)},
		)
	}
	return d
}

func DocumentoContratos(res *consumo.Resultado) Documento {
	d := Documento{
		Titulo:  "RELATÓRIO DE CONSUMO DOS CONTRATOS" + tituloSistema,
		Arquivo: "relatorio_contratos",
		Resumo:  [][2]string{{"Contratos ativos:", strconv.Itoa(res.TotalContratosAtivos)}},
		Colunas: []Coluna{
			{Titulo: "Contrato", Largura: 22},
			{Titulo: "Fornecedor"},
			{Titulo: "Vigência", Largura: 38},
			{Titulo: "Combustível", Largura: 22},
			{Titulo: "Contratado", Largura: 26, Alinhamento: "R"},
			{Titulo: "Consumido", Largura: 26, Alinhamento: "R"},
			{Titulo: "Restante", Largura: 26, Alinhamento: "R"},
			{Titulo: "%", Largura: 16, Alinhamento: "R"},
			{Titulo: "Valor consumido", Largura: 30, Alinhamento: "R"},
			{Titulo: "Valor restante", Largura: 30, Alinhamento: "R"},
		},
	}
	for _, l := range res.Linhas() {
		d.Linhas = append(d.Linhas, []string{
			fmt.Sprintf("%s/%d", l.NumeroContrato, l.AnoContrato),
			l.Fornecedor,
			l.DataInicio.Format("02/01/2006") + " a " + l.DataFim.Format("02/01/2006"),
			l.TipoCombustivel,
			utils.FormatarLitros(l.QuantidadeContratada),
			utils.FormatarLitros(l.QuantidadeConsumida),
			utils.FormatarLitros(l.QuantidadeRestante),
			utils.FormatarPercentual(l.PercentualConsumido),
			utils.FormatarMoeda(l.ValorConsumido),
			utils.FormatarMoeda(l.ValorRestante),
		})
	}
	d.Totais = [][2]string{
		{"Valor contratado:", utils.FormatarMoeda(res.TotalValorContratado)},
		{"Valor consumido:", utils.FormatarMoeda(res.TotalValorConsumido)},
		{"Valor restante:", utils.FormatarMoeda(res.TotalValorRestante)},
	}
	return d
}
