package inventory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// NoReference clave de grupo para productos sin código de referencia.
const NoReference = "SEM-REF"

// NormalizeReference recorta y pasa a mayúsculas el código de referencia.
func NormalizeReference(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}

// Group variantes (talla/color) que comparten código de referencia.
type Group struct {
	Reference   string
	Name        string // nombre de la primera variante
	TotalStock  int
	AverageCost decimal.Decimal // costo de compra promedio ponderado por stock
	Variants    []entity.Product
}

// GroupByReference agrupa los productos por referencia, ordenados por referencia.
// Las variantes conservan el orden de entrada.
func GroupByReference(products []entity.Product) []Group {
	idx := make(map[string]int)
	groups := make([]Group, 0)
	for _, p := range products {
		ref := NormalizeReference(p.ReferenceCode)
		if ref == "" {
			ref = NoReference
		}
		i, ok := idx[ref]
		if !ok {
			i = len(groups)
			idx[ref] = i
			groups = append(groups, Group{Reference: ref, Name: p.Name})
		}
		g := &groups[i]
		g.AverageCost = WeightedCost(
			decimal.NewFromInt(int64(g.TotalStock)), g.AverageCost,
			decimal.NewFromInt(int64(p.Stock)), p.PurchasePrice,
		)
		g.TotalStock += p.Stock
		g.Variants = append(g.Variants, p)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Reference < groups[j].Reference })
	return groups
}

// WeightedCost costo promedio ponderado al sumar una entrada al stock actual.
// ((stockActual * costoActual) + (cantEntrada * costoEntrada)) / (stockActual + cantEntrada)
func WeightedCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(2)
}
