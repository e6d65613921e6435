package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineRequest línea del carrito.
type CartLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// CheckoutRequest cuerpo de POST /api/sales/checkout.
type CheckoutRequest struct {
	CustomerID          string            `json:"customer_id" validate:"required"`
	Items               []CartLineRequest `json:"items" validate:"required,min=1"`
	PaymentMethod       string            `json:"payment_method" validate:"required"` // pix | cartao | dinheiro
	Discount            string            `json:"discount"`
	DiscountDescription string            `json:"discount_description"`
	ShippingCharged     string            `json:"shipping_charged"`
	ShippingCost        string            `json:"shipping_cost"`
	Date                string            `json:"date"` // YYYY-MM-DD, vacío = ahora
}

// SaleResponse una línea de venta.
type SaleResponse struct {
	ID                  string          `json:"id"`
	OrderID             string          `json:"order_id"`
	CustomerID          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name,omitempty"`
	ProductID           string          `json:"product_id"`
	ProductName         string          `json:"product_name,omitempty"`
	Amount              int             `json:"amount"`
	Value               decimal.Decimal `json:"value"`
	Discount            decimal.Decimal `json:"discount"`
	DiscountDescription string          `json:"discount_description,omitempty"`
	PaymentMethod       string          `json:"payment_method"`
	ShippingCharged     decimal.Decimal `json:"shipping_charged"`
	ShippingCost        decimal.Decimal `json:"shipping_cost"`
	CreatedAt           time.Time       `json:"created_at"`
}

// CheckoutResponse pedido creado.
type CheckoutResponse struct {
	OrderID         string          `json:"order_id"`
	Total           decimal.Decimal `json:"total"` // suma de value + flete cobrado
	Discount        decimal.Decimal `json:"discount"`
	ShippingCharged decimal.Decimal `json:"shipping_charged"`
	Lines           []SaleResponse  `json:"lines"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
