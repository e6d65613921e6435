package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest entrada para crear o reemplazar un gasto.
type ExpenseRequest struct {
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount" validate:"required"`
	Category    string `json:"category" validate:"required"` // Fixo | Variável | Marketing | Estoque | Outros
	Date        string `json:"date"`                         // YYYY-MM-DD, vacío = hoy
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseListResponse lista paginada de gastos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ExpenseSummaryDTO totales de gastos.
type ExpenseSummaryDTO struct {
	MonthTotal   decimal.Decimal `json:"month_total"`
	AllTimeTotal decimal.Decimal `json:"all_time_total"`
	MonthCount   int             `json:"month_count"`
	Count        int             `json:"count"`
}
