package finance_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/finance"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var brt = time.FixedZone("BRT", -3*60*60)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, brt)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msg)
}

// newSale venta de una unidad con producto de costo cost.
func newSale(id string, createdAt time.Time, value, cost string) entity.Sale {
	return entity.Sale{
		ID:        id,
		ProductID: "p-" + id,
		Amount:    1,
		Value:     dec(value),
		CreatedAt: createdAt,
		Product: &entity.Product{
			ID:            "p-" + id,
			Name:          "Produto " + id,
			PurchasePrice: dec(cost),
		},
	}
}

func newExpense(id string, date time.Time, amount string) entity.Expense {
	return entity.Expense{ID: id, Description: "gasto " + id, Amount: dec(amount), Category: entity.ExpenseFixo, Date: date}
}

func monthly(now time.Time) finance.Input {
	return finance.Input{Filter: finance.Filter{Type: finance.FilterMonthly}, Now: now}
}

// ──────────────────────────────────────────────────────────────────────────────
// Compute y períodos
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_GananciaNetaConGasto(t *testing.T) {
	in := monthly(at(2024, time.November, 25, 12, 0))
	in.Sales = []entity.Sale{
		newSale("s1", at(2024, time.November, 2, 10, 0), "100", "50"),
		newSale("s2", at(2024, time.November, 3, 10, 0), "200", "50"),
		newSale("s3", at(2024, time.November, 4, 10, 0), "300", "50"),
	}
	in.Expenses = []entity.Expense{newExpense("e1", at(2024, time.November, 10, 9, 0), "80")}

	r, err := finance.Compute(in)
	require.NoError(t, err)

	assertDec(t, "600", r.Current.Revenue)
	assertDec(t, "150", r.Current.COGS)
	assertDec(t, "80", r.Current.Expenses)
	assertDec(t, "370", r.NetProfit)
	assert.Equal(t, 3, r.Current.SalesCount)
	assert.Empty(t, r.SkippedSales)
}

func TestVariation_SinBaseDevuelveCero(t *testing.T) {
	assertDec(t, "0", finance.Variation(dec("500"), decimal.Zero))
}

func TestCompute_SerieOrdenadaPorDia(t *testing.T) {
	in := monthly(at(2024, time.November, 25, 12, 0))
	in.Sales = []entity.Sale{
		newSale("s2", at(2024, time.November, 20, 15, 0), "50", "60"),
		newSale("s1", at(2024, time.November, 5, 11, 0), "100", "60"),
	}

	r, err := finance.Compute(in)
	require.NoError(t, err)

	require.Len(t, r.Timeline, 2)
	assert.Equal(t, "05", r.Timeline[0].Key)
	assert.Equal(t, "5", r.Timeline[0].Label)
	assertDec(t, "40", r.Timeline[0].Amount)
	assert.Equal(t, "20", r.Timeline[1].Key)
	assert.Equal(t, "20", r.Timeline[1].Label)
	assertDec(t, "-10", r.Timeline[1].Amount)
}

func TestResolvePeriod_RangoPersonalizado(t *testing.T) {
	now := at(2024, time.March, 1, 8, 0)
	p, err := finance.ResolvePeriod(finance.Filter{
		Type:  finance.FilterCustomRange,
		Range: finance.DateRange{Start: at(2024, time.January, 1, 0, 0), End: at(2024, time.January, 31, 0, 0)},
	}, now)
	require.NoError(t, err)

	assert.True(t, p.HasComparison)
	assert.Equal(t, at(2024, time.January, 1, 0, 0), p.Current.Start)
	assert.Equal(t, time.Date(2024, time.January, 31, 23, 59, 59, 0, brt), p.Current.End)

	wantEnd := time.Date(2023, time.December, 31, 23, 59, 59, int(999*time.Millisecond), brt)
	assert.True(t, wantEnd.Equal(p.Comparison.End), "fin de comparación: %s", p.Comparison.End)
	// misma duración que la ventana actual
	assert.Equal(t, p.Current.End.Sub(p.Current.Start), p.Comparison.End.Sub(p.Comparison.Start))
	assert.True(t, p.Comparison.End.Before(p.Current.Start))
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolvePeriod
// ──────────────────────────────────────────────────────────────────────────────

func TestResolvePeriod_Mensual(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		wantStart     time.Time
		wantCompStart time.Time
		wantCompEnd   time.Time
	}{
		{
			name:          "mes corriente",
			now:           at(2024, time.November, 25, 12, 0),
			wantStart:     at(2024, time.November, 1, 0, 0),
			wantCompStart: at(2024, time.October, 1, 0, 0),
			wantCompEnd:   time.Date(2024, time.October, 31, 23, 59, 59, 999999999, brt),
		},
		{
			name:          "enero compara con diciembre del año anterior",
			now:           at(2025, time.January, 10, 9, 30),
			wantStart:     at(2025, time.January, 1, 0, 0),
			wantCompStart: at(2024, time.December, 1, 0, 0),
			wantCompEnd:   time.Date(2024, time.December, 31, 23, 59, 59, 999999999, brt),
		},
		{
			name:          "marzo compara con febrero bisiesto",
			now:           at(2024, time.March, 3, 0, 0),
			wantStart:     at(2024, time.March, 1, 0, 0),
			wantCompStart: at(2024, time.February, 1, 0, 0),
			wantCompEnd:   time.Date(2024, time.February, 29, 23, 59, 59, 999999999, brt),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterMonthly}, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, p.Current.Start)
			assert.Equal(t, tt.now, p.Current.End)
			assert.Equal(t, tt.wantCompStart, p.Comparison.Start)
			assert.Equal(t, tt.wantCompEnd, p.Comparison.End)
			assert.True(t, p.HasComparison)
			assert.Equal(t, brt, p.Location)
		})
	}
}

func TestCompute_ComparacionIncluyeTodoElUltimoDiaDelMesAnterior(t *testing.T) {
	in := monthly(at(2024, time.November, 25, 12, 0))
	in.Sales = []entity.Sale{
		newSale("noche", at(2024, time.October, 31, 21, 30), "100", "40"),
		newSale("inicio", at(2024, time.November, 1, 0, 0), "50", "20"),
	}

	r, err := finance.Compute(in)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Comparison.SalesCount)
	assertDec(t, "100", r.Comparison.Revenue)
	assert.Equal(t, 1, r.Current.SalesCount)
}

func TestResolvePeriod_Total_SinComparacion(t *testing.T) {
	now := at(2024, time.November, 25, 12, 0)
	p, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterAllTime}, now)
	require.NoError(t, err)
	assert.False(t, p.HasComparison)
	assert.True(t, p.Current.Start.Equal(time.Unix(0, 0)))
	assert.Equal(t, now, p.Current.End)
}

func TestResolvePeriod_Errores(t *testing.T) {
	now := at(2024, time.November, 25, 12, 0)
	tests := []struct {
		name   string
		filter finance.Filter
	}{
		{"inicio posterior al fin", finance.Filter{Type: finance.FilterCustomRange, Range: finance.DateRange{Start: at(2024, time.February, 2, 0, 0), End: at(2024, time.February, 1, 0, 0)}}},
		{"rango sin fechas", finance.Filter{Type: finance.FilterCustomRange}},
		{"filtro desconocido", finance.Filter{Type: "anual"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := finance.ResolvePeriod(tt.filter, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestResolvePeriod_RangoDeUnSoloDia(t *testing.T) {
	day := at(2024, time.May, 10, 0, 0)
	p, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterCustomRange, Range: finance.DateRange{Start: day, End: day}}, at(2024, time.June, 1, 0, 0))
	require.NoError(t, err)
	assert.True(t, p.Current.Contains(at(2024, time.May, 10, 23, 59)))
	assert.False(t, p.Current.Contains(at(2024, time.May, 11, 0, 0)))
	assert.True(t, p.Comparison.Contains(at(2024, time.May, 9, 12, 0)))
}

func TestParseFilterType(t *testing.T) {
	ft, err := finance.ParseFilterType("")
	require.NoError(t, err)
	assert.Equal(t, finance.FilterMonthly, ft)

	ft, err = finance.ParseFilterType("total")
	require.NoError(t, err)
	assert.Equal(t, finance.FilterAllTime, ft)

	_, err = finance.ParseFilterType("semanal")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregate
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_LimitesInclusivos(t *testing.T) {
	now := at(2024, time.November, 25, 12, 0)
	p, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterMonthly}, now)
	require.NoError(t, err)

	sales := []entity.Sale{
		newSale("inicio", at(2024, time.November, 1, 0, 0), "10", "0"),
		newSale("ahora", now, "20", "0"),
		newSale("futuro", now.Add(time.Second), "1000", "0"),
		newSale("fin-comp", time.Date(2024, time.October, 31, 23, 59, 59, 999999999, brt), "30", "0"),
		newSale("inicio-comp", at(2024, time.October, 1, 0, 0), "40", "0"),
		newSale("excluida", time.Date(2024, time.September, 30, 23, 59, 59, 0, brt), "5000", "0"),
	}
	l := finance.Aggregate(sales, nil, p)

	assertDec(t, "30", l.Current.Revenue)
	assert.Equal(t, 2, l.Current.SalesCount)
	assertDec(t, "70", l.Comparison.Revenue)
	assert.Equal(t, 2, l.Comparison.SalesCount)
	assert.Len(t, l.Entries, 2)
}

func TestAggregate_VentaSinProductoSeOmite(t *testing.T) {
	now := at(2024, time.November, 25, 12, 0)
	p, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterMonthly}, now)
	require.NoError(t, err)

	orphan := newSale("huerfana", at(2024, time.November, 3, 0, 0), "999", "0")
	orphan.Product = nil

	l := finance.Aggregate([]entity.Sale{orphan, newSale("ok", at(2024, time.November, 3, 0, 0), "10", "4")}, nil, p)

	assert.Equal(t, []string{"huerfana"}, l.SkippedSales)
	assertDec(t, "10", l.Current.Revenue)
	assertDec(t, "4", l.Current.COGS)
}

func TestAggregate_FleteYCantidad(t *testing.T) {
	now := at(2024, time.November, 25, 12, 0)
	p, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterMonthly}, now)
	require.NoError(t, err)

	s := newSale("s1", at(2024, time.November, 3, 0, 0), "300", "40")
	s.Amount = 3
	s.ShippingCharged = dec("15")
	s.ShippingCost = dec("10")

	l := finance.Aggregate([]entity.Sale{s}, nil, p)
	assertDec(t, "120", l.Current.COGS)
	assertDec(t, "5", l.Current.ShippingBalance())
	// (300 + 15) - (120 + 10)
	assertDec(t, "185", l.Current.NetProfit())
	require.Len(t, l.Entries, 1)
	assertDec(t, "185", l.Entries[0].Amount)
}

func TestAggregate_GastoFueraDeVentanaNoCuenta(t *testing.T) {
	now := at(2024, time.November, 25, 12, 0)
	p, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterMonthly}, now)
	require.NoError(t, err)

	l := finance.Aggregate(nil, []entity.Expense{
		newExpense("dentro", at(2024, time.November, 2, 0, 0), "80"),
		newExpense("fuera", at(2024, time.October, 2, 0, 0), "500"),
	}, p)

	assertDec(t, "80", l.Current.Expenses)
	assertDec(t, "0", l.Comparison.Profit)
	require.Len(t, l.Entries, 1)
	assertDec(t, "-80", l.Entries[0].Amount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compute
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_EntradaVacia(t *testing.T) {
	r, err := finance.Compute(monthly(at(2024, time.November, 25, 12, 0)))
	require.NoError(t, err)

	assert.NotNil(t, r.Timeline)
	assert.Empty(t, r.Timeline)
	assertDec(t, "0", r.NetProfit)
	assertDec(t, "0", r.Variations.Revenue)
	assertDec(t, "0", r.Variations.Profit)
}

func TestCompute_Variaciones(t *testing.T) {
	in := monthly(at(2024, time.November, 25, 12, 0))
	in.Sales = []entity.Sale{
		newSale("oct", at(2024, time.October, 10, 0, 0), "200", "100"),
		newSale("nov", at(2024, time.November, 10, 0, 0), "250", "100"),
	}
	in.Expenses = []entity.Expense{
		newExpense("nov", at(2024, time.November, 11, 0, 0), "30"),
		// los gastos de la ventana de comparación no cuentan
		newExpense("oct", at(2024, time.October, 11, 0, 0), "90"),
	}

	r, err := finance.Compute(in)
	require.NoError(t, err)

	assertDec(t, "200", r.Comparison.Revenue)
	assertDec(t, "100", r.Comparison.Profit)
	assertDec(t, "25", r.Variations.Revenue)
	// neto 250-100-30 = 120 frente a 100
	assertDec(t, "20", r.Variations.Profit)
}

func TestCompute_Total_SinVariacion(t *testing.T) {
	in := finance.Input{
		Filter: finance.Filter{Type: finance.FilterAllTime},
		Now:    at(2025, time.February, 1, 0, 0),
		Sales: []entity.Sale{
			newSale("a", at(2024, time.November, 2, 0, 0), "100", "50"),
			newSale("b", at(2025, time.January, 15, 0, 0), "300", "50"),
		},
	}
	r, err := finance.Compute(in)
	require.NoError(t, err)

	assertDec(t, "0", r.Variations.Revenue)
	assertDec(t, "0", r.Variations.Profit)
	assert.Equal(t, 0, r.Comparison.SalesCount)

	require.Len(t, r.Timeline, 2)
	assert.Equal(t, "2024-11", r.Timeline[0].Key)
	assert.Equal(t, "nov de 24", r.Timeline[0].Label)
	assert.Equal(t, "2025-01", r.Timeline[1].Key)
	assert.Equal(t, "jan de 25", r.Timeline[1].Label)
}

func TestCompute_ProyeccionAcumulada(t *testing.T) {
	in := monthly(at(2024, time.November, 25, 12, 0))
	in.Projection = finance.ProjectionCumulative
	in.Sales = []entity.Sale{
		newSale("s1", at(2024, time.November, 5, 11, 0), "100", "60"),
		newSale("s2", at(2024, time.November, 20, 15, 0), "50", "60"),
	}
	in.Expenses = []entity.Expense{newExpense("e1", at(2024, time.November, 22, 0, 0), "5")}

	r, err := finance.Compute(in)
	require.NoError(t, err)

	require.Len(t, r.Timeline, 3)
	assertDec(t, "40", r.Timeline[0].Amount)
	assertDec(t, "30", r.Timeline[1].Amount)
	assertDec(t, "25", r.Timeline[2].Amount)
	assertDec(t, r.NetProfit.String(), r.Timeline[2].Amount)
}

func TestCompute_RegistroInvalido(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *finance.Input)
		wantField string
		wantErr   error
	}{
		{
			name: "cantidad cero",
			mutate: func(in *finance.Input) {
				in.Sales[0].Amount = 0
			},
			wantField: "amount",
			wantErr:   finance.ErrNonPositiveQuantity,
		},
		{
			name: "valor negativo",
			mutate: func(in *finance.Input) {
				in.Sales[0].Value = dec("-1")
			},
			wantField: "value",
			wantErr:   finance.ErrNegativeValue,
		},
		{
			name: "costo de producto negativo",
			mutate: func(in *finance.Input) {
				in.Sales[0].Product.PurchasePrice = dec("-3")
			},
			wantField: "purchase_price",
			wantErr:   finance.ErrNegativeValue,
		},
		{
			name: "gasto negativo",
			mutate: func(in *finance.Input) {
				in.Expenses = []entity.Expense{newExpense("e1", at(2024, time.November, 2, 0, 0), "-8")}
			},
			wantField: "amount",
			wantErr:   finance.ErrNegativeValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := monthly(at(2024, time.November, 25, 12, 0))
			in.Sales = []entity.Sale{newSale("s1", at(2024, time.November, 5, 0, 0), "10", "5")}
			tt.mutate(&in)

			_, err := finance.Compute(in)
			require.Error(t, err)

			var ce *finance.ComputationError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.wantField, ce.Field)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Variation y GoalProgress
// ──────────────────────────────────────────────────────────────────────────────

func TestVariation(t *testing.T) {
	tests := []struct {
		current, previous, want string
	}{
		{"150", "100", "50"},
		{"50", "100", "-50"},
		{"100", "300", "-66.67"},
		{"0", "0", "0"},
		{"10", "-20", "0"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_vs_%s", tt.current, tt.previous), func(t *testing.T) {
			assertDec(t, tt.want, finance.Variation(dec(tt.current), dec(tt.previous)))
		})
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		net, goal, want string
	}{
		{"2500", "5000", "50"},
		{"6000", "5000", "100"},
		{"-10", "5000", "0"},
		{"100", "0", "0"},
		{"1", "3", "33.33"},
	}
	for _, tt := range tests {
		assertDec(t, tt.want, finance.GoalProgress(dec(tt.net), dec(tt.goal)), tt.net, tt.goal)
	}
}
