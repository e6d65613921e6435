package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

var expenseColumns = []string{"id", "description", "amount", "category", "date", "created_at"}

type expenseRow struct {
	ID          string         `db:"id"`
	Description string         `db:"description"`
	Amount      pgtype.Numeric `db:"amount"`
	Category    string         `db:"category"`
	Date        time.Time      `db:"date"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r expenseRow) toEntity() (*entity.Expense, error) {
	c := numericConv{recordID: r.ID}
	e := &entity.Expense{
		ID:          r.ID,
		Description: r.Description,
		Amount:      c.required(r.Amount, "amount"),
		Category:    r.Category,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
	}
	if c.err != nil {
		return nil, c.err
	}
	return e, nil
}

// ExpenseRepo implementación del puerto ExpenseRepository.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el repositorio (pool o tx).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create inserta un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, description, amount, category, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.Description, e.Amount, e.Category, e.Date, e.CreatedAt); err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("insert expense: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto. (nil, nil) si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	query, args, err := psql.Select(expenseColumns...).From("expenses").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get expense: %w", err)
	}
	var row expenseRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return row.toEntity()
}

// Update actualiza descripción, monto, categoría y fecha.
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE expenses SET description = $2, amount = $3, category = $4, date = $5 WHERE id = $1`,
		e.ID, e.Description, e.Amount, e.Category, e.Date)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un gasto.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todos los gastos, del más reciente al más antiguo.
func (r *ExpenseRepo) List(ctx context.Context) ([]*entity.Expense, error) {
	query, args, err := psql.Select(expenseColumns...).From("expenses").OrderBy("date DESC", "created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expenses: %w", err)
	}
	var rows []expenseRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]*entity.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
