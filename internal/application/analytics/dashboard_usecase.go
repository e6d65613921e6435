package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/usecase"
	"github.com/jhoicas/boutique-api/internal/domain/crm"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/finance"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/whatsapp"
)

const (
	dashboardMonths    = 3 // meses en la serie de ingresos
	dashboardListLimit = 3 // cumpleaños e inactivas
)

// DashboardUseCase genera el resumen del inicio: ingresos del mes, serie de los
// últimos meses, clientas a contactar y piezas con poco stock.
type DashboardUseCase struct {
	source        repository.FinanceSource
	products      repository.ProductRepository
	lowStockBelow int
	loc           *time.Location
	log           zerolog.Logger
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. lowStockBelow es el umbral (exclusivo) de stock bajo.
func NewDashboardUseCase(
	source repository.FinanceSource,
	products repository.ProductRepository,
	lowStockBelow int,
	loc *time.Location,
	log zerolog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{source: source, products: products, lowStockBelow: lowStockBelow, loc: loc, log: log, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres lecturas en paralelo:
//  1. ListSales      → ingresos, serie mensual, top compradora, inactivas
//  2. ListCustomers  → cumpleaños, inactivas
//  3. ListLowStock   → piezas por reponer
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.loc)

	type salesResult struct {
		rows []entity.Sale
		err  error
	}
	type customersResult struct {
		rows []entity.Customer
		err  error
	}
	type lowStockResult struct {
		rows []*entity.Product
		err  error
	}

	salesCh := make(chan salesResult, 1)
	customersCh := make(chan customersResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		rows, err := uc.source.ListSales(ctx)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.source.ListCustomers(ctx)
		customersCh <- customersResult{rows, err}
	}()
	go func() {
		rows, err := uc.products.ListLowStock(ctx, uc.lowStockBelow)
		lowCh <- lowStockResult{rows, err}
	}()

	sales := <-salesCh
	customers := <-customersCh
	low := <-lowCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("dashboard: clientas: %w", customers.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	// ── Mes en curso frente al anterior ────────────────────────────────────────
	period, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterMonthly}, now)
	if err != nil {
		return nil, err
	}
	monthRevenue, prevRevenue := decimal.Zero, decimal.Zero
	monthSales := make([]entity.Sale, 0)
	todayCount := 0
	ty, tm, td := now.Date()
	for _, s := range sales.rows {
		switch {
		case period.Current.Contains(s.CreatedAt):
			monthRevenue = monthRevenue.Add(s.Value)
			monthSales = append(monthSales, s)
		case period.Comparison.Contains(s.CreatedAt):
			prevRevenue = prevRevenue.Add(s.Value)
		}
		if y, m, d := s.CreatedAt.In(uc.loc).Date(); y == ty && m == tm && d == td {
			todayCount++
		}
	}

	out := &dto.DashboardSummaryDTO{
		MonthLabel:        finance.MonthShortLabel(now.Year(), now.Month()),
		MonthRevenue:      monthRevenue,
		PreviousRevenue:   prevRevenue,
		GrowthPct:         finance.Variation(monthRevenue, prevRevenue),
		TodaySalesCount:   todayCount,
		MonthlyRevenue:    monthlySeries(sales.rows, uc.loc, dashboardMonths),
		Birthdays:         make([]dto.BirthdayDTO, 0),
		InactiveCustomers: make([]dto.InactiveCustomerDTO, 0),
		LowStock:          make([]dto.ProductResponse, 0, len(low.rows)),
	}
	if top := crm.TopSpender(monthSales); top != nil {
		out.TopSpender = &dto.SpenderDTO{Name: top.Name, Total: top.Total}
	}

	// ── Clientas ───────────────────────────────────────────────────────────────
	for _, b := range crm.UpcomingBirthdays(customers.rows, now, dashboardListLimit) {
		out.Birthdays = append(out.Birthdays, dto.BirthdayDTO{
			CustomerID:   b.Customer.ID,
			Name:         b.Customer.Name,
			Phone:        b.Customer.Phone,
			Date:         b.Next,
			DaysLeft:     b.DaysLeft,
			WhatsAppLink: uc.link(b.Customer.ID, b.Customer.Name, b.Customer.Phone),
		})
	}
	for _, in := range crm.InactiveCustomers(customers.rows, sales.rows, now, dashboardListLimit) {
		out.InactiveCustomers = append(out.InactiveCustomers, dto.InactiveCustomerDTO{
			CustomerID:   in.CustomerID,
			Name:         in.Name,
			Phone:        in.Phone,
			Days:         in.Days,
			WhatsAppLink: uc.link(in.CustomerID, in.Name, in.Phone),
		})
	}

	for _, p := range low.rows {
		out.LowStock = append(out.LowStock, usecase.ToProductResponse(p, now))
	}
	return out, nil
}

// link enlace de WhatsApp o vacío si el teléfono no sirve.
func (uc *DashboardUseCase) link(customerID, name, phone string) string {
	l, err := whatsapp.Link(phone, whatsapp.Greeting(name))
	if err != nil {
		uc.log.Debug().Str("customer_id", customerID).Err(err).Msg("clienta sin teléfono válido")
		return ""
	}
	return l
}

// monthlySeries ingresos por mes de los últimos n meses que tienen ventas.
func monthlySeries(sales []entity.Sale, loc *time.Location, n int) []dto.MonthRevenueDTO {
	totals := make(map[string]decimal.Decimal)
	labels := make(map[string]string)
	for _, s := range sales {
		t := s.CreatedAt.In(loc)
		k := finance.MonthKey(t)
		totals[k] = totals[k].Add(s.Value)
		labels[k] = finance.MonthShortLabel(t.Year(), t.Month())
	}
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > n {
		keys = keys[len(keys)-n:]
	}
	out := make([]dto.MonthRevenueDTO, len(keys))
	for i, k := range keys {
		out[i] = dto.MonthRevenueDTO{Key: k, Label: labels[k], Total: totals[k]}
	}
	return out
}
