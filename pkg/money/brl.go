// Package money formatea montos en reales (pt-BR).
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL "R$ 1.234,56". Siempre dos decimales.
func FormatBRL(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "R$ " + printer.Sprint(number.Decimal(f, number.Scale(2)))
}

// FormatPercent "12,5%" con hasta dos decimales.
func FormatPercent(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprint(number.Decimal(f, number.MaxFractionDigits(2))) + "%"
}
