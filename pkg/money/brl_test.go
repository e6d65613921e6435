package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/pkg/money"
)

func TestFormatBRL(t *testing.T) {
	tests := map[string]string{
		"1234.5":  "R$ 1.234,50",
		"0":       "R$ 0,00",
		"89.9":    "R$ 89,90",
		"-12.345": "R$ -12,35",
	}
	for in, want := range tests {
		assert.Equal(t, want, money.FormatBRL(decimal.RequireFromString(in)), in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12,5%", money.FormatPercent(decimal.RequireFromString("12.5")))
	assert.Equal(t, "-66,67%", money.FormatPercent(decimal.RequireFromString("-66.666")))
}
