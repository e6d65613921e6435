package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Variations variación porcentual entre la ventana actual y la de comparación.
type Variations struct {
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// Variation ((current - previous) / previous) * 100, redondeado a 2 decimales.
// Un previous cero o negativo se trata como "sin base" y devuelve 0. Esto no distingue
// "creció desde cero" de "no hay datos"; es una limitación conocida.
func Variation(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// GoalProgress porcentaje alcanzado de la meta de ganancia, limitado a [0, 100].
func GoalProgress(netProfit, goal decimal.Decimal) decimal.Decimal {
	if !goal.IsPositive() || !netProfit.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(hundred, netProfit.Div(goal).Mul(hundred)).Round(2)
}
