package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRequest parámetros de GET /api/analytics/report.
// Start y End (YYYY-MM-DD) solo se usan con filter=periodo.
type ReportRequest struct {
	Filter     string `query:"filter"`     // total | mensal | periodo (default mensal)
	Start      string `query:"start"`      // YYYY-MM-DD
	End        string `query:"end"`        // YYYY-MM-DD
	Projection string `query:"projection"` // delta | cumulative (default delta)
}

// WindowDTO intervalo de fechas de un reporte.
type WindowDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TotalsDTO acumulados de la ventana actual.
type TotalsDTO struct {
	Revenue         decimal.Decimal `json:"revenue"`
	COGS            decimal.Decimal `json:"cogs"`
	ShippingCharged decimal.Decimal `json:"shipping_charged"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Expenses        decimal.Decimal `json:"expenses"`
	SalesCount      int             `json:"sales_count"`
}

// ComparisonDTO acumulados de la ventana de comparación (sin gastos).
type ComparisonDTO struct {
	Window     *WindowDTO      `json:"window,omitempty"` // nil en modo total
	Revenue    decimal.Decimal `json:"revenue"`
	Profit     decimal.Decimal `json:"profit"`
	SalesCount int             `json:"sales_count"`
}

// TimelinePointDTO punto de la serie de ganancia/pérdida.
type TimelinePointDTO struct {
	Key    string          `json:"key"`   // YYYY-MM o DD
	Label  string          `json:"label"` // "nov de 24" o "5"
	Amount decimal.Decimal `json:"amount"`
}

// VariationsDTO variación porcentual frente a la ventana de comparación.
type VariationsDTO struct {
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// GoalDTO meta de ganancia y avance.
type GoalDTO struct {
	Value    decimal.Decimal `json:"value"`
	Progress decimal.Decimal `json:"progress"` // 0 a 100
}

// ReportDTO respuesta de GET /api/analytics/report.
type ReportDTO struct {
	Filter          string             `json:"filter"`
	Projection      string             `json:"projection"`
	Window          WindowDTO          `json:"window"`
	Totals          TotalsDTO          `json:"totals"`
	NetProfit       decimal.Decimal    `json:"net_profit"`
	ShippingBalance decimal.Decimal    `json:"shipping_balance"`
	Comparison      ComparisonDTO      `json:"comparison"`
	Variations      VariationsDTO      `json:"variations"`
	Timeline        []TimelinePointDTO `json:"timeline"`
	Goal            GoalDTO            `json:"goal"`
	SkippedSales    int                `json:"skipped_sales"`
}

// ProductShareDTO porción del gráfico de torta.
type ProductShareDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Units       int             `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
	SharePct    decimal.Decimal `json:"share_pct"`
}

// ProductMixDTO respuesta de GET /api/analytics/product-mix.
type ProductMixDTO struct {
	Filter string            `json:"filter"`
	Window WindowDTO         `json:"window"`
	Items  []ProductShareDTO `json:"items"`
}

// UpdateGoalRequest cuerpo de PUT /api/analytics/goal. Acepta "5000", "5.000,00".
type UpdateGoalRequest struct {
	Value string `json:"value"`
}
