package repository

import (
	"context"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// FinanceSource fuente de registros para el motor financiero.
// Las implementaciones son read-only y devuelven colecciones completas, sin orden garantizado.
// Un valor numérico inválido en la base se reporta como *finance.ComputationError.
type FinanceSource interface {
	// ListSales devuelve todas las ventas con producto y clienta cargados (nil si el registro ya no existe).
	ListSales(ctx context.Context) ([]entity.Sale, error)
	ListExpenses(ctx context.Context) ([]entity.Expense, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
}
