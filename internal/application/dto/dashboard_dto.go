package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	MonthLabel        string                `json:"month_label"` // ej: "nov/24"
	MonthRevenue      decimal.Decimal       `json:"month_revenue"`
	PreviousRevenue   decimal.Decimal       `json:"previous_revenue"`
	GrowthPct         decimal.Decimal       `json:"growth_pct"`
	TodaySalesCount   int                   `json:"today_sales_count"`
	MonthlyRevenue    []MonthRevenueDTO     `json:"monthly_revenue"` // últimos 3 meses con ventas
	TopSpender        *SpenderDTO           `json:"top_spender"`
	Birthdays         []BirthdayDTO         `json:"birthdays"`
	InactiveCustomers []InactiveCustomerDTO `json:"inactive_customers"`
	LowStock          []ProductResponse     `json:"low_stock"`
}

// MonthRevenueDTO ingresos de un mes.
type MonthRevenueDTO struct {
	Key   string          `json:"key"`   // YYYY-MM
	Label string          `json:"label"` // nov/24
	Total decimal.Decimal `json:"total"`
}

// SpenderDTO clienta que más compró en el mes.
type SpenderDTO struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// BirthdayDTO cumpleaños próximo.
type BirthdayDTO struct {
	CustomerID   string    `json:"customer_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Date         time.Time `json:"date"`
	DaysLeft     int       `json:"days_left"`
	WhatsAppLink string    `json:"whatsapp_link,omitempty"`
}

// InactiveCustomerDTO clienta sin compras recientes (999 días = nunca compró).
type InactiveCustomerDTO struct {
	CustomerID   string `json:"customer_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Days         int    `json:"days"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
}
