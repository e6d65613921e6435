// Package sales contiene el checkout, el recibo por pedido y el listado de ventas.
package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// El descuento de stock y el alta de las líneas del pedido se confirman juntos o no se confirman.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptGenerator genera el PDF del recibo de un pedido.
type ReceiptGenerator interface {
	GenerateReceipt(r *Receipt) ([]byte, error)
}

// Receipt datos del recibo, ya resueltos y en la zona horaria de la tienda.
type Receipt struct {
	StoreName           string
	OrderID             string
	Date                time.Time
	CustomerName        string
	CustomerPhone       string
	PaymentMethod       string
	Lines               []ReceiptLine
	Subtotal            decimal.Decimal // suma de valores brutos
	Discount            decimal.Decimal
	DiscountDescription string
	ShippingCharged     decimal.Decimal
	Total               decimal.Decimal // subtotal - descuento + flete cobrado
}

// ReceiptLine una línea del recibo.
type ReceiptLine struct {
	ProductName string
	Size        string
	Color       string
	Quantity    int
	Gross       decimal.Decimal
	Discount    decimal.Decimal
	Value       decimal.Decimal
}
