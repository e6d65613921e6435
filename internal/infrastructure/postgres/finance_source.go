package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.FinanceSource = (*FinanceSource)(nil)

// FinanceSource lecturas completas para el motor financiero y el panel de inicio.
// Read-only; no garantiza orden.
type FinanceSource struct {
	q Querier
}

// NewFinanceSource construye la fuente sobre pool o tx.
func NewFinanceSource(q Querier) *FinanceSource {
	return &FinanceSource{q: q}
}

// ListSales todas las ventas con producto y clienta (LEFT JOIN).
func (s *FinanceSource) ListSales(ctx context.Context) ([]entity.Sale, error) {
	return selectSales(ctx, s.q, salesJoinedQuery())
}

// ListExpenses todos los gastos.
func (s *FinanceSource) ListExpenses(ctx context.Context) ([]entity.Expense, error) {
	query, args, err := psql.Select(expenseColumns...).From("expenses").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expenses: %w", err)
	}
	var rows []expenseRow
	if err := pgxscan.Select(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// ListProducts todos los productos.
func (s *FinanceSource) ListProducts(ctx context.Context) ([]entity.Product, error) {
	query, args, err := psql.Select(productColumns...).From("products").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// ListCustomers todas las clientas.
func (s *FinanceSource) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("customers").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list customers: %w", err)
	}
	var rows []customerRow
	if err := pgxscan.Select(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]entity.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.toEntity())
	}
	return out, nil
}
