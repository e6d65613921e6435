package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para las líneas de venta.
// Las ventas no se editan una vez creadas.
type SaleRepository interface {
	CreateBatch(ctx context.Context, sales []*entity.Sale) error
	// ListByOrder devuelve las líneas del pedido con producto y clienta cargados.
	ListByOrder(ctx context.Context, orderID string) ([]entity.Sale, error)
}
