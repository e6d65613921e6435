package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// SettingRepository preferencias numéricas clave/valor.
type SettingRepository interface {
	// GetDecimal devuelve ok=false si la clave no existe.
	GetDecimal(ctx context.Context, key string) (value decimal.Decimal, ok bool, err error)
	SetDecimal(ctx context.Context, key string, value decimal.Decimal) error
}
