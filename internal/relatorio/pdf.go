package relatorio

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	margemPDF   = 10.0
	alturaLinha = 6.0
)

// EscreverPDF renderiza o documento em A4 paisagem: título, cabeçalho,
// tabela (com títulos repetidos a cada página) e totais.
func EscreverPDF(w io.Writer, d Documento) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margemPDF, margemPDF, margemPDF)
	pdf.SetAutoPageBreak(true, margemPDF)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*margemPDF
	larguras := distribuirLarguras(d.Colunas, contentW)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr(d.Titulo), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	for _, par := range d.cabecalho() {
		pdf.CellFormat(45, 5, tr(par[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW-45, 5, tr(par[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	titulos := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range d.Colunas {
			pdf.CellFormat(larguras[i], alturaLinha, tr(c.Titulo), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	titulos()
	for _, linha := range d.Linhas {
		if pdf.GetY()+alturaLinha > pageH-margemPDF {
			pdf.AddPage()
			titulos()
		}
		for i, c := range d.Colunas {
			valor := ""
			if i < len(linha) {
				valor = linha[i]
			}
			alin := c.Alinhamento
			if alin == "" {
				alin = "L"
			}
			pdf.CellFormat(larguras[i], alturaLinha, tr(valor), "1", 0, alin, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(d.Totais) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "TOTAIS GERAIS", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, par := range d.Totais {
			pdf.CellFormat(70, 5, tr(par[0]), "", 0, "L", false, 0, "")
			pdf.CellFormat(contentW-70, 5, tr(par[1]), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return nil
}

// distribuirLarguras reparte a largura útil. Colunas sem largura dividem o
// que sobra; se as larguras fixas passam do total, tudo é escalado.
func distribuirLarguras(colunas []Coluna, total float64) []float64 {
	out := make([]float64, len(colunas))
	fixo, livres := 0.0, 0
	for i, c := range colunas {
		out[i] = c.Largura
		if c.Largura > 0 {
			fixo += c.Largura
		} else {
			livres++
		}
	}
	if livres > 0 {
		resto := total - fixo
		if resto < 0 {
			resto = 0
		}
		for i := range out {
			if out[i] == 0 {
				out[i] = resto / float64(livres)
			}
		}
		return out
	}
	if fixo > total {
		for i := range out {
			out[i] = out[i] * total / fixo
		}
	}
	return out
}
