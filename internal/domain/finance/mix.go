package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// DefaultMixSize cantidad de productos en el gráfico de torta.
const DefaultMixSize = 5

// ProductShare participación de un producto en los ingresos de la ventana.
type ProductShare struct {
	ProductID   string
	ProductName string
	Units       int
	Revenue     decimal.Decimal
	Profit      decimal.Decimal
	SharePct    decimal.Decimal
}

// ProductMix agrupa las ventas de la ventana por producto y devuelve los n con mayor ingreso.
// Empates se resuelven por nombre y luego por id. SharePct es sobre el ingreso total de la ventana.
func ProductMix(sales []entity.Sale, w Window, n int) []ProductShare {
	byProduct := make(map[string]*ProductShare)
	total := decimal.Zero

	for i := range sales {
		s := &sales[i]
		if !w.Contains(s.CreatedAt) {
			continue
		}
		fig, ok := FiguresOf(s)
		if !ok {
			continue
		}
		ps, found := byProduct[s.Product.ID]
		if !found {
			ps = &ProductShare{ProductID: s.Product.ID, ProductName: s.Product.Name}
			byProduct[s.Product.ID] = ps
		}
		ps.Units += s.Amount
		ps.Revenue = ps.Revenue.Add(fig.Revenue)
		ps.Profit = ps.Profit.Add(fig.Profit())
		total = total.Add(fig.Revenue)
	}

	out := make([]ProductShare, 0, len(byProduct))
	for _, ps := range byProduct {
		if total.IsPositive() {
			ps.SharePct = ps.Revenue.Div(total).Mul(hundred).Round(2)
		}
		out = append(out, *ps)
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].ProductID < out[j].ProductID
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
