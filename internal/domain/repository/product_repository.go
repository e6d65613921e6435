package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, below int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	// DecrementStock descuenta qty del stock; domain.ErrInsufficientStock si no alcanza.
	DecrementStock(ctx context.Context, id string, qty int) error
}
