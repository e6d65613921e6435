package postgres

import (
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain/finance"
)

// toDecimal convierte un NUMERIC leído como pgtype.Numeric.
// NaN o ±Infinity siempre son error; NULL es error solo si el campo es obligatorio.
// Los errores son *finance.ComputationError con el id de la fila.
func toDecimal(n pgtype.Numeric, recordID, field string, required bool) (decimal.Decimal, error) {
	if !n.Valid {
		if required {
			return decimal.Zero, &finance.ComputationError{RecordID: recordID, Field: field, Err: finance.ErrMissingNumber}
		}
		return decimal.Zero, nil
	}
	if n.NaN {
		return decimal.Zero, &finance.ComputationError{RecordID: recordID, Field: field, Value: "NaN", Err: finance.ErrMalformedNumber}
	}
	if n.InfinityModifier != pgtype.Finite {
		return decimal.Zero, &finance.ComputationError{RecordID: recordID, Field: field, Value: "Infinity", Err: finance.ErrMalformedNumber}
	}
	if n.Int == nil {
		return decimal.NewFromBigInt(new(big.Int), n.Exp), nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

// numericConv acumula el primer error de una serie de conversiones de la misma fila.
type numericConv struct {
	recordID string
	err      error
}

func (c *numericConv) required(n pgtype.Numeric, field string) decimal.Decimal {
	return c.convert(n, field, true)
}

func (c *numericConv) optional(n pgtype.Numeric, field string) decimal.Decimal {
	return c.convert(n, field, false)
}

func (c *numericConv) convert(n pgtype.Numeric, field string, required bool) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}
	d, err := toDecimal(n, c.recordID, field, required)
	if err != nil {
		c.err = err
	}
	return d
}
