package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// Totals acumulados de la ventana actual.
type Totals struct {
	Revenue         decimal.Decimal
	COGS            decimal.Decimal
	ShippingCharged decimal.Decimal
	ShippingCost    decimal.Decimal
	Expenses        decimal.Decimal
	SalesCount      int
}

// NetProfit = (ingresos + flete cobrado) - (COGS + flete pagado + gastos).
func (t Totals) NetProfit() decimal.Decimal {
	in := t.Revenue.Add(t.ShippingCharged)
	out := t.COGS.Add(t.ShippingCost).Add(t.Expenses)
	return in.Sub(out)
}

// ShippingBalance flete cobrado menos flete pagado.
func (t Totals) ShippingBalance() decimal.Decimal {
	return t.ShippingCharged.Sub(t.ShippingCost)
}

// ComparisonTotals acumulados de la ventana de comparación.
// Los gastos no se siguen en la comparación.
type ComparisonTotals struct {
	Revenue    decimal.Decimal
	Profit     decimal.Decimal
	SalesCount int
}

// Entry contribución con signo a la serie temporal: ganancia de una venta (+) o un gasto (-).
type Entry struct {
	At     time.Time
	Amount decimal.Decimal
}

// Ledger resultado de una pasada del agregador.
type Ledger struct {
	Current      Totals
	Comparison   ComparisonTotals
	Entries      []Entry  // contribuciones dentro de la ventana actual
	SkippedSales []string // ventas sin producto resoluble
}

// SaleFigures cifras derivadas de una venta con su producto.
type SaleFigures struct {
	Revenue         decimal.Decimal
	Cost            decimal.Decimal
	ShippingCharged decimal.Decimal
	ShippingCost    decimal.Decimal
}

// Profit = (ingreso + flete cobrado) - (costo + flete pagado).
func (f SaleFigures) Profit() decimal.Decimal {
	return f.Revenue.Add(f.ShippingCharged).Sub(f.Cost.Add(f.ShippingCost))
}

// FiguresOf calcula las cifras de la venta. ok es false si la venta no tiene producto.
func FiguresOf(s *entity.Sale) (SaleFigures, bool) {
	if s.Product == nil {
		return SaleFigures{}, false
	}
	return SaleFigures{
		Revenue:         s.Value,
		Cost:            s.Product.PurchasePrice.Mul(decimal.NewFromInt(int64(s.Amount))),
		ShippingCharged: s.ShippingCharged,
		ShippingCost:    s.ShippingCost,
	}, true
}

// Aggregate recorre ventas y gastos una sola vez y los clasifica en ventana actual,
// ventana de comparación o excluidos. El resultado no depende del orden de entrada
// salvo el orden de Entries y SkippedSales.
func Aggregate(sales []entity.Sale, expenses []entity.Expense, p Period) Ledger {
	l := Ledger{
		Entries:      make([]Entry, 0, len(sales)+len(expenses)),
		SkippedSales: []string{},
	}

	for i := range sales {
		s := &sales[i]
		fig, ok := FiguresOf(s)
		if !ok {
			l.SkippedSales = append(l.SkippedSales, s.ID)
			continue
		}
		profit := fig.Profit()

		switch {
		case p.Current.Contains(s.CreatedAt):
			l.Current.Revenue = l.Current.Revenue.Add(fig.Revenue)
			l.Current.COGS = l.Current.COGS.Add(fig.Cost)
			l.Current.ShippingCharged = l.Current.ShippingCharged.Add(fig.ShippingCharged)
			l.Current.ShippingCost = l.Current.ShippingCost.Add(fig.ShippingCost)
			l.Current.SalesCount++
			l.Entries = append(l.Entries, Entry{At: s.CreatedAt, Amount: profit})
		case p.HasComparison && p.Comparison.Contains(s.CreatedAt):
			l.Comparison.Revenue = l.Comparison.Revenue.Add(fig.Revenue)
			l.Comparison.Profit = l.Comparison.Profit.Add(profit)
			l.Comparison.SalesCount++
		}
	}

	for i := range expenses {
		e := &expenses[i]
		if !p.Current.Contains(e.Date) {
			continue
		}
		l.Current.Expenses = l.Current.Expenses.Add(e.Amount)
		l.Entries = append(l.Entries, Entry{At: e.Date, Amount: e.Amount.Neg()})
	}

	return l
}
