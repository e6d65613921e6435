package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney convierte un monto escrito a mano en decimal.
// Acepta "12.50", "12,50" y "1.234,56" (coma como separador decimal, punto como miles).
// Cualquier otro formato devuelve *ComputationError con el id del registro.
func ParseMoney(recordID, field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, &ComputationError{RecordID: recordID, Field: field, Err: ErrMissingNumber}
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ComputationError{RecordID: recordID, Field: field, Value: raw, Err: ErrMalformedNumber}
	}
	return d, nil
}

// ParseOptionalMoney igual que ParseMoney pero un valor vacío equivale a cero.
func ParseOptionalMoney(recordID, field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return ParseMoney(recordID, field, raw)
}
