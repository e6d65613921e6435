// Package analytics contiene los casos de uso del reporte financiero, la meta de
// ganancia y el resumen del inicio.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/finance"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// ReportUseCase arma el reporte de ganancias del período elegido.
//
// Fuente de datos: FinanceSource (consultas read-only). El cálculo lo hace finance.Compute;
// este caso de uso solo resuelve parámetros, lee en paralelo y traduce a DTO.
type ReportUseCase struct {
	source repository.FinanceSource
	goals  *GoalUseCase
	loc    *time.Location
	log    zerolog.Logger
	now    func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(source repository.FinanceSource, goals *GoalUseCase, loc *time.Location, log zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{source: source, goals: goals, loc: loc, log: log, now: time.Now}
}

// WithClock reemplaza el reloj.
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

type snapshot struct {
	sales    []entity.Sale
	expenses []entity.Expense
	goal     decimal.Decimal
}

// load lee ventas, gastos y meta en paralelo.
func (uc *ReportUseCase) load(ctx context.Context) (*snapshot, error) {
	type salesResult struct {
		rows []entity.Sale
		err  error
	}
	type expensesResult struct {
		rows []entity.Expense
		err  error
	}
	type goalResult struct {
		goal decimal.Decimal
		err  error
	}

	salesCh := make(chan salesResult, 1)
	expensesCh := make(chan expensesResult, 1)
	goalCh := make(chan goalResult, 1)

	go func() {
		rows, err := uc.source.ListSales(ctx)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.source.ListExpenses(ctx)
		expensesCh <- expensesResult{rows, err}
	}()
	go func() {
		g, err := uc.goals.Load(ctx)
		goalCh <- goalResult{g, err}
	}()

	sales := <-salesCh
	expenses := <-expensesCh
	goal := <-goalCh

	if sales.err != nil {
		return nil, fmt.Errorf("reporte: ventas: %w", sales.err)
	}
	if expenses.err != nil {
		return nil, fmt.Errorf("reporte: gastos: %w", expenses.err)
	}
	if goal.err != nil {
		return nil, fmt.Errorf("reporte: %w", goal.err)
	}
	return &snapshot{sales: sales.rows, expenses: expenses.rows, goal: goal.goal}, nil
}

// Report calcula el reporte. Errores: domain.ErrInvalidInput por parámetros,
// *finance.ComputationError por registros inválidos.
func (uc *ReportUseCase) Report(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error) {
	filter, err := parseFilter(req, uc.loc)
	if err != nil {
		return nil, err
	}
	proj, err := finance.ParseProjection(req.Projection)
	if err != nil {
		return nil, err
	}
	snap, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	rep, err := finance.Compute(finance.Input{
		Sales:      snap.sales,
		Expenses:   snap.expenses,
		Filter:     filter,
		Now:        uc.now().In(uc.loc),
		Projection: proj,
	})
	if err != nil {
		uc.logComputationError(err)
		return nil, fmt.Errorf("reporte: %w", err)
	}
	if len(rep.SkippedSales) > 0 {
		uc.log.Warn().
			Int("count", len(rep.SkippedSales)).
			Strs("sale_ids", rep.SkippedSales).
			Msg("ventas sin producto omitidas del reporte")
	}
	return toReportDTO(rep, proj, snap.goal), nil
}

// Goal meta guardada y avance del mes en curso.
func (uc *ReportUseCase) Goal(ctx context.Context) (*dto.GoalDTO, error) {
	rep, err := uc.Report(ctx, dto.ReportRequest{Filter: string(finance.FilterMonthly)})
	if err != nil {
		return nil, err
	}
	return &rep.Goal, nil
}

// ProductMix top de productos por ingreso dentro de la ventana actual del filtro.
func (uc *ReportUseCase) ProductMix(ctx context.Context, req dto.ReportRequest) (*dto.ProductMixDTO, error) {
	filter, err := parseFilter(req, uc.loc)
	if err != nil {
		return nil, err
	}
	period, err := finance.ResolvePeriod(filter, uc.now().In(uc.loc))
	if err != nil {
		return nil, err
	}
	sales, err := uc.source.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("mix: ventas: %w", err)
	}
	for i := range sales {
		if err := finance.ValidateSale(&sales[i]); err != nil {
			uc.logComputationError(err)
			return nil, fmt.Errorf("mix: %w", err)
		}
	}

	shares := finance.ProductMix(sales, period.Current, finance.DefaultMixSize)
	items := make([]dto.ProductShareDTO, len(shares))
	for i, s := range shares {
		items[i] = dto.ProductShareDTO{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			Units:       s.Units,
			Revenue:     s.Revenue,
			Profit:      s.Profit,
			SharePct:    s.SharePct,
		}
	}
	return &dto.ProductMixDTO{
		Filter: string(filter.Type),
		Window: dto.WindowDTO{Start: period.Current.Start, End: period.Current.End},
		Items:  items,
	}, nil
}

func (uc *ReportUseCase) logComputationError(err error) {
	var ce *finance.ComputationError
	if errors.As(err, &ce) {
		uc.log.Warn().
			Str("record_id", ce.RecordID).
			Str("field", ce.Field).
			Str("value", ce.Value).
			Err(ce.Err).
			Msg("registro inválido en el cálculo financiero")
	}
}

func parseFilter(req dto.ReportRequest, loc *time.Location) (finance.Filter, error) {
	ft, err := finance.ParseFilterType(req.Filter)
	if err != nil {
		return finance.Filter{}, err
	}
	f := finance.Filter{Type: ft}
	if ft != finance.FilterCustomRange {
		return f, nil
	}
	start, err := dto.ParseDate("start", req.Start, loc)
	if err != nil {
		return f, err
	}
	end, err := dto.ParseDate("end", req.End, loc)
	if err != nil {
		return f, err
	}
	if start != nil {
		f.Range.Start = *start
	}
	if end != nil {
		f.Range.End = *end
	}
	return f, nil
}

func toReportDTO(rep *finance.Report, proj finance.Projection, goal decimal.Decimal) *dto.ReportDTO {
	out := &dto.ReportDTO{
		Filter:     string(rep.Filter.Type),
		Projection: string(proj),
		Window:     dto.WindowDTO{Start: rep.Period.Current.Start, End: rep.Period.Current.End},
		Totals: dto.TotalsDTO{
			Revenue:         rep.Current.Revenue,
			COGS:            rep.Current.COGS,
			ShippingCharged: rep.Current.ShippingCharged,
			ShippingCost:    rep.Current.ShippingCost,
			Expenses:        rep.Current.Expenses,
			SalesCount:      rep.Current.SalesCount,
		},
		NetProfit:       rep.NetProfit,
		ShippingBalance: rep.ShippingBalance,
		Comparison: dto.ComparisonDTO{
			Revenue:    rep.Comparison.Revenue,
			Profit:     rep.Comparison.Profit,
			SalesCount: rep.Comparison.SalesCount,
		},
		Variations: dto.VariationsDTO{Revenue: rep.Variations.Revenue, Profit: rep.Variations.Profit},
		Timeline:   make([]dto.TimelinePointDTO, len(rep.Timeline)),
		Goal: dto.GoalDTO{
			Value:    goal,
			Progress: finance.GoalProgress(rep.NetProfit, goal),
		},
		SkippedSales: len(rep.SkippedSales),
	}
	if rep.Period.HasComparison {
		out.Comparison.Window = &dto.WindowDTO{Start: rep.Period.Comparison.Start, End: rep.Period.Comparison.End}
	}
	for i, p := range rep.Timeline {
		out.Timeline[i] = dto.TimelinePointDTO{Key: p.Key, Label: p.Label, Amount: p.Amount}
	}
	return out
}
