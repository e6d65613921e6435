package dto

import "time"

// CreateCustomerRequest entrada para registrar una clienta.
type CreateCustomerRequest struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email"`
	Instagram string `json:"instagram"`
	Birthday  string `json:"birthday"` // YYYY-MM-DD
}

// CustomerResponse salida de una clienta.
type CustomerResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email,omitempty"`
	Instagram string     `json:"instagram,omitempty"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CustomerListResponse lista paginada de clientas.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// WhatsAppLinkResponse enlace wa.me con saludo.
type WhatsAppLinkResponse struct {
	CustomerID string `json:"customer_id"`
	URL        string `json:"url"`
	Message    string `json:"message"`
}
