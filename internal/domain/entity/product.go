package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultExpectedDays días objetivo en estante cuando el producto no define uno.
const DefaultExpectedDays = 30

// Product representa una pieza del catálogo de la boutique.
// Cada combinación talla/color es una fila propia; ReferenceCode agrupa las variantes.
type Product struct {
	ID            string
	Name          string
	ReferenceCode string          // código de referencia (agrupa variantes); vacío = sin referencia
	PurchasePrice decimal.Decimal // costo unitario de compra
	Price         decimal.Decimal // precio de lista unitario
	Stock         int             // nunca negativo; se descuenta en cada venta
	Size          string
	Color         string
	PurchaseDate  *time.Time
	ExpectedDays  int // días objetivo en estante
	CreatedAt     time.Time
}

// ExpectedShelfDays devuelve ExpectedDays o el valor por defecto si no está definido.
func (p *Product) ExpectedShelfDays() int {
	if p.ExpectedDays <= 0 {
		return DefaultExpectedDays
	}
	return p.ExpectedDays
}
