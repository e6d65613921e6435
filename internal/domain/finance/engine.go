package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// Input instantánea de registros y parámetros del reporte.
type Input struct {
	Sales      []entity.Sale
	Expenses   []entity.Expense
	Filter     Filter
	Now        time.Time
	Projection Projection
}

// Report resultado completo del motor de agregación.
type Report struct {
	Filter          Filter
	Period          Period
	Current         Totals
	NetProfit       decimal.Decimal
	ShippingBalance decimal.Decimal
	Comparison      ComparisonTotals
	Timeline        []TimelinePoint
	Variations      Variations
	SkippedSales    []string
}

// Compute valida los registros, resuelve el período, agrega y construye la serie.
// Es puro: la misma entrada produce el mismo reporte.
func Compute(in Input) (*Report, error) {
	if err := validateRecords(in.Sales, in.Expenses); err != nil {
		return nil, err
	}

	period, err := ResolvePeriod(in.Filter, in.Now)
	if err != nil {
		return nil, fmt.Errorf("finance: resolver período: %w", err)
	}

	proj := in.Projection
	if proj == "" {
		proj = ProjectionDelta
	}

	ledger := Aggregate(in.Sales, in.Expenses, period)
	net := ledger.Current.NetProfit()

	return &Report{
		Filter:          in.Filter,
		Period:          period,
		Current:         ledger.Current,
		NetProfit:       net,
		ShippingBalance: ledger.Current.ShippingBalance(),
		Comparison:      ledger.Comparison,
		Timeline:        BuildTimeline(ledger.Entries, GranularityFor(in.Filter.Type), proj, period.Location),
		Variations: Variations{
			Revenue: Variation(ledger.Current.Revenue, ledger.Comparison.Revenue),
			Profit:  Variation(net, ledger.Comparison.Profit),
		},
		SkippedSales: ledger.SkippedSales,
	}, nil
}
