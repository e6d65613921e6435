package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo preferencias clave/valor en la tabla settings.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el repositorio.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// GetDecimal lee el valor de key.
func (r *SettingRepo) GetDecimal(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	var n pgtype.Numeric
	if err := r.q.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("get setting %s: %w", key, err)
	}
	d, err := toDecimal(n, key, "value", true)
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}

// SetDecimal inserta o reemplaza el valor de key.
func (r *SettingRepo) SetDecimal(ctx context.Context, key string, value decimal.Decimal) error {
	query := `
		INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
