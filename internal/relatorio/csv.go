package relatorio

import (
	"encoding/csv"
	"fmt"
	"io"
)

// EscreverCSV grava bloco de cabeçalho, tabela e totais, separados por linhas vazias.
func EscreverCSV(w io.Writer, d Documento) error {
	cw := csv.NewWriter(w)
	linhas := [][]string{{d.Titulo}}
	for _, par := range d.cabecalho() {
		linhas = append(linhas, []string{par[0], par[1]})
	}
	linhas = append(linhas, []string{}, d.titulosColunas())
	linhas = append(linhas, d.Linhas...)
	if len(d.Totais) > 0 {
		linhas = append(linhas, []string{}, []string{"TOTAIS GERAIS:"})
		for _, par := range d.Totais {
			linhas = append(linhas, []string{par[0], par[1]})
		}
	}
	if err := cw.WriteAll(linhas); err != nil {
		return fmt.Errorf("escrever csv: %w", err)
	}
	return nil
}
