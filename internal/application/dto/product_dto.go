package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Los montos llegan como texto ("89,90" o "89.90").
type CreateProductRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	ReferenceCode string `json:"reference_code"`
	PurchasePrice string `json:"purchase_price"`
	Price         string `json:"price"`
	Stock         int    `json:"stock" validate:"min=0"`
	Size          string `json:"size"`
	Color         string `json:"color"`
	PurchaseDate  string `json:"purchase_date"` // YYYY-MM-DD, vacío = sin fecha
	ExpectedDays  int    `json:"expected_days"`
}

// UpdateProductRequest actualización parcial; los campos nil no cambian.
type UpdateProductRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	ReferenceCode *string `json:"reference_code"`
	PurchasePrice *string `json:"purchase_price"`
	Price         *string `json:"price"`
	Stock         *int    `json:"stock"`
	Size          *string `json:"size"`
	Color         *string `json:"color"`
	PurchaseDate  *string `json:"purchase_date"`
	ExpectedDays  *int    `json:"expected_days"`
}

// ReplenishRequest cuerpo de POST /api/products/:id/replenish.
type ReplenishRequest struct {
	Stock int `json:"stock" validate:"min=1"`
}

// AgingDTO estado de permanencia en estante.
type AgingDTO struct {
	Status       string `json:"status"` // parada | saida_rapida | em_giro
	Label        string `json:"label"`
	DaysInStock  int    `json:"days_in_stock"`
	ExpectedDays int    `json:"expected_days"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ReferenceCode string          `json:"reference_code"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	Size          string          `json:"size"`
	Color         string          `json:"color"`
	PurchaseDate  *time.Time      `json:"purchase_date,omitempty"`
	ExpectedDays  int             `json:"expected_days"`
	Aging         *AgingDTO       `json:"aging,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
