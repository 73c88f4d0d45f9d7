package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

func formatar(v decimal.Decimal, casas int) string {
	f, _ := v.Round(int32(casas)).Float64()
	return ptBR.Sprint(number.Decimal(f, number.Scale(casas)))
}

// FormatarMoeda devolve "R$ 1.234,56".
func FormatarMoeda(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-R$ " + formatar(v.Neg(), 2)
	}
	return "R$ " + formatar(v, 2)
}

// FormatarLitros devolve "1.234,56 L".
func FormatarLitros(v decimal.Decimal) string {
	return formatar(v, 2) + " L"
}

// FormatarNumero usa separadores pt-BR com a quantidade de casas pedida.
func FormatarNumero(v decimal.Decimal, casas int) string {
	return formatar(v, casas)
}

// FormatarPercentual devolve "87,5%".
func FormatarPercentual(v decimal.Decimal) string {
	return formatar(v, 1) + "%"
}
