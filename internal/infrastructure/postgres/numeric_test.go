package postgres

import (
	"errors"
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/domain/finance"
)

func TestToDecimal(t *testing.T) {
	d, err := toDecimal(pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}, "v1", "value", true)
	require.NoError(t, err)
	assert.Equal(t, "12.5", d.String())

	d, err = toDecimal(pgtype.Numeric{}, "v1", "shipping_cost", false)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestToDecimal_Invalido(t *testing.T) {
	tests := []struct {
		name    string
		n       pgtype.Numeric
		wantErr error
	}{
		{"nulo obligatorio", pgtype.Numeric{}, finance.ErrMissingNumber},
		{"NaN", pgtype.Numeric{NaN: true, Valid: true}, finance.ErrMalformedNumber},
		{"infinito", pgtype.Numeric{InfinityModifier: pgtype.Infinity, Valid: true}, finance.ErrMalformedNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := toDecimal(tt.n, "venda-7", "value", true)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var ce *finance.ComputationError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "venda-7", ce.RecordID)
		})
	}
}

func TestNumericConv_PrimerError(t *testing.T) {
	c := numericConv{recordID: "x"}
	c.required(pgtype.Numeric{Int: big.NewInt(1), Valid: true}, "a")
	c.required(pgtype.Numeric{NaN: true, Valid: true}, "b")
	c.required(pgtype.Numeric{}, "c")

	var ce *finance.ComputationError
	require.True(t, errors.As(c.err, &ce))
	assert.Equal(t, "b", ce.Field)
}
