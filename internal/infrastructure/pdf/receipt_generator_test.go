package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/sales"
)

func TestGenerateReceipt_DevuelvePDF(t *testing.T) {
	r := &sales.Receipt{
		StoreName:           "Boutique Flor",
		OrderID:             "aB3dE5fG",
		Date:                time.Date(2024, 11, 20, 15, 4, 0, 0, time.UTC),
		CustomerName:        "Ana",
		CustomerPhone:       "11999990000",
		PaymentMethod:       "Pix",
		DiscountDescription: "aniversário",
		Lines: []sales.ReceiptLine{
			{ProductName: "Vestido", Size: "M", Color: "Azul", Quantity: 1, Gross: decimal.NewFromInt(100), Discount: decimal.NewFromInt(10), Value: decimal.NewFromInt(90)},
			{ProductName: "Brinco", Quantity: 2, Gross: decimal.NewFromInt(40), Value: decimal.NewFromInt(40)},
		},
		Subtotal:        decimal.NewFromInt(140),
		Discount:        decimal.NewFromInt(10),
		ShippingCharged: decimal.NewFromInt(15),
		Total:           decimal.NewFromInt(145),
	}

	out, err := NewReceiptGenerator().GenerateReceipt(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Vestido (M, Azul)", describe(sales.ReceiptLine{ProductName: "Vestido", Size: "M", Color: "Azul"}))
	assert.Equal(t, "Saia (P)", describe(sales.ReceiptLine{ProductName: "Saia", Size: "P"}))
	assert.Equal(t, "Brinco", describe(sales.ReceiptLine{ProductName: "Brinco"}))
}
