package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

var customerColumns = []string{"id", "name", "phone", "email", "instagram", "birthday", "created_at"}

type customerRow struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Phone     string     `db:"phone"`
	Email     string     `db:"email"`
	Instagram string     `db:"instagram"`
	Birthday  *time.Time `db:"birthday"`
	CreatedAt time.Time  `db:"created_at"`
}

func (r customerRow) toEntity() *entity.Customer {
	return &entity.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Instagram: r.Instagram,
		Birthday:  r.Birthday,
		CreatedAt: r.CreatedAt,
	}
}

// CustomerRepo implementación del puerto CustomerRepository.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el repositorio (pool o tx).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create inserta una clienta.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, phone, email, instagram, birthday, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Phone, c.Email, c.Instagram, c.Birthday, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene una clienta. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("customers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get customer: %w", err)
	}
	var row customerRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return row.toEntity(), nil
}

// List todas las clientas por nombre.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("customers").OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list customers: %w", err)
	}
	var rows []customerRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]*entity.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
