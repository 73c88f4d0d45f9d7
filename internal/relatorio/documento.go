package relatorio

import "time"

// Coluna de uma tabela exportada. Largura é em mm no PDF; Alinhamento usa
// as letras do fpdf (L, C, R).
type Coluna struct {
	Titulo      string
	Largura     float64
	Alinhamento string
}

// Documento é a forma neutra de um relatório, renderizada em CSV ou PDF.
type Documento struct {
	Titulo   string
	Arquivo  string
	GeradoEm time.Time
	Usuario  string
	Filtros  []string
	Resumo   [][2]string
	Colunas  []Coluna
	Linhas   [][]string
	Totais   [][2]string
}

func (d Documento) cabecalho() [][2]string {
	out := [][2]string{
		{"Data de geração:", d.GeradoEm.Format("02/01/2006 15:04")},
		{"Usuário:", d.Usuario},
	}
	for _, f := range d.Filtros {
		out = append(out, [2]string{"Filtro:", f})
	}
	return append(out, d.Resumo...)
}

func (d Documento) titulosColunas() []string {
	out := make([]string, len(d.Colunas))
	for i, c := range d.Colunas {
		out[i] = c.Titulo
	}
	return out
}
