// Package checkout reparte los montos de un pedido entre sus líneas.
package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// Line una línea del carrito.
type Line struct {
	Product  *entity.Product
	Quantity int
}

// Gross precio de venta por cantidad.
func (l Line) Gross() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Charges montos a nivel de pedido.
type Charges struct {
	Discount        decimal.Decimal
	ShippingCharged decimal.Decimal
	ShippingCost    decimal.Decimal
}

// Allocation parte de cada monto que corresponde a una línea.
type Allocation struct {
	Gross           decimal.Decimal
	Discount        decimal.Decimal
	Value           decimal.Decimal
	ShippingCharged decimal.Decimal
	ShippingCost    decimal.Decimal
}

// Allocate reparte el descuento proporcional al bruto de cada línea y el flete en partes iguales.
// La última línea absorbe el resto del redondeo. Ninguna parte del descuento es negativa
// ni supera el bruto de su línea, así que Value nunca es negativo.
func Allocate(lines []Line, c Charges) ([]Allocation, error) {
	if err := validate(lines, c); err != nil {
		return nil, err
	}

	n := len(lines)
	out := make([]Allocation, n)
	totalGross := decimal.Zero
	for i, l := range lines {
		out[i].Gross = l.Gross()
		totalGross = totalGross.Add(out[i].Gross)
	}

	discount := decimal.Min(c.Discount, totalGross)
	discountShares := proportional(discount, out, totalGross)
	chargedShares := even(c.ShippingCharged, n)
	costShares := even(c.ShippingCost, n)

	for i := range out {
		out[i].Discount = discountShares[i]
		out[i].Value = decimal.Max(decimal.Zero, out[i].Gross.Sub(discountShares[i]))
		out[i].ShippingCharged = chargedShares[i]
		out[i].ShippingCost = costShares[i]
	}
	return out, nil
}

// proportional reparte total según el bruto de cada línea. Cada parte queda en [0, bruto];
// la última línea toma el resto y lo que no quepa se corre a las líneas con margen, de atrás hacia adelante.
func proportional(total decimal.Decimal, allocs []Allocation, totalGross decimal.Decimal) []decimal.Decimal {
	n := len(allocs)
	shares := make([]decimal.Decimal, n)
	if total.IsZero() || !totalGross.IsPositive() {
		for i := range shares {
			shares[i] = decimal.Zero
		}
		return shares
	}
	assigned := decimal.Zero
	for i := 0; i < n-1; i++ {
		shares[i] = clamp(total.Mul(allocs[i].Gross).Div(totalGross).Round(2), allocs[i].Gross)
		assigned = assigned.Add(shares[i])
	}
	shares[n-1] = clamp(total.Sub(assigned), allocs[n-1].Gross)
	assigned = assigned.Add(shares[n-1])

	diff := total.Sub(assigned)
	for i := n - 1; i >= 0 && !diff.IsZero(); i-- {
		if diff.IsPositive() {
			take := decimal.Min(diff, allocs[i].Gross.Sub(shares[i]))
			shares[i] = shares[i].Add(take)
			diff = diff.Sub(take)
			continue
		}
		take := decimal.Min(diff.Neg(), shares[i])
		shares[i] = shares[i].Sub(take)
		diff = diff.Add(take)
	}
	return shares
}

func clamp(v, upper decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(v, upper))
}

// even divide total en n partes truncadas a centavos; el resto va a la última.
func even(total decimal.Decimal, n int) []decimal.Decimal {
	shares := make([]decimal.Decimal, n)
	part := total.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	for i := 0; i < n-1; i++ {
		shares[i] = part
	}
	shares[n-1] = total.Sub(part.Mul(decimal.NewFromInt(int64(n - 1))))
	return shares
}

func validate(lines []Line, c Charges) error {
	if len(lines) == 0 {
		return fmt.Errorf("checkout: carrito vacío: %w", domain.ErrInvalidInput)
	}
	for i, l := range lines {
		if l.Product == nil {
			return fmt.Errorf("checkout: línea %d sin producto: %w", i+1, domain.ErrInvalidInput)
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("checkout: línea %d con cantidad %d: %w", i+1, l.Quantity, domain.ErrInvalidInput)
		}
		if l.Product.Price.IsNegative() {
			return fmt.Errorf("checkout: producto %s con precio negativo: %w", l.Product.ID, domain.ErrInvalidInput)
		}
	}
	if c.Discount.IsNegative() || c.ShippingCharged.IsNegative() || c.ShippingCost.IsNegative() {
		return fmt.Errorf("checkout: montos negativos: %w", domain.ErrInvalidInput)
	}
	return nil
}

// CheckStock verifica que cada producto tenga stock para la suma de sus líneas.
func CheckStock(lines []Line) error {
	requested := make(map[string]int, len(lines))
	for _, l := range lines {
		requested[l.Product.ID] += l.Quantity
	}
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if seen[l.Product.ID] {
			continue
		}
		seen[l.Product.ID] = true
		if want := requested[l.Product.ID]; want > l.Product.Stock {
			return fmt.Errorf("checkout: %s: disponible %d, pedido %d: %w",
				l.Product.Name, l.Product.Stock, want, domain.ErrInsufficientStock)
		}
	}
	return nil
}
