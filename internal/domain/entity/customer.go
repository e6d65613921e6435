package entity

import "time"

// Customer representa una clienta de la boutique.
type Customer struct {
	ID        string
	Name      string
	Phone     string // solo dígitos
	Email     string
	Instagram string
	Birthday  *time.Time
	CreatedAt time.Time
}
