package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados en caja.
const (
	PaymentPix      = "pix"
	PaymentCartao   = "cartao"
	PaymentDinheiro = "dinheiro"
)

// IsValidPaymentMethod indica si m es un medio de pago conocido.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentPix, PaymentCartao, PaymentDinheiro:
		return true
	}
	return false
}

// Sale es una línea de venta. Es inmutable una vez creada.
// OrderID agrupa las líneas de un mismo checkout; CreatedAt es también la fecha de la venta.
type Sale struct {
	ID                  string
	OrderID             string
	CustomerID          string
	ProductID           string
	Amount              int             // cantidad (entero positivo)
	Value               decimal.Decimal // ingreso neto de la línea, ya descontada su parte del descuento
	Discount            decimal.Decimal // parte del descuento del pedido asignada a la línea
	DiscountDescription string
	PaymentMethod       string
	ShippingCharged     decimal.Decimal // parte del flete cobrado al cliente
	ShippingCost        decimal.Decimal // parte del flete pagado por la tienda
	CreatedAt           time.Time

	// Joins opcionales (nil si no se cargaron o el registro ya no existe).
	Product  *Product
	Customer *Customer
}

// PaymentMethodLabel nombre visible del medio de pago.
func PaymentMethodLabel(m string) string {
	switch m {
	case PaymentPix:
		return "Pix"
	case PaymentCartao:
		return "Cartão"
	case PaymentDinheiro:
		return "Dinheiro"
	}
	return m
}
