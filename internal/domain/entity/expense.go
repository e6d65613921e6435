package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto.
const (
	ExpenseFixo      = "Fixo"
	ExpenseVariavel  = "Variável"
	ExpenseMarketing = "Marketing"
	ExpenseEstoque   = "Estoque"
	ExpenseOutros    = "Outros"
)

// IsValidExpenseCategory indica si c es una categoría conocida.
func IsValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseFixo, ExpenseVariavel, ExpenseMarketing, ExpenseEstoque, ExpenseOutros:
		return true
	}
	return false
}

// Expense representa un gasto (siempre una salida de dinero).
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	CreatedAt   time.Time
}
