package finance

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedNumber     = errors.New("valor numérico inválido")
	ErrMissingNumber       = errors.New("valor numérico ausente")
	ErrNegativeValue       = errors.New("valor negativo no permitido")
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser mayor que cero")
)

// ComputationError indica que un registro de entrada no se puede usar en el cálculo.
// Identifica el registro y el campo ofensivo en lugar de tratar el valor como cero.
type ComputationError struct {
	RecordID string
	Field    string
	Value    string
	Err      error
}

func (e *ComputationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("registro %s: campo %s: %v", e.RecordID, e.Field, e.Err)
	}
	return fmt.Sprintf("registro %s: campo %s (%q): %v", e.RecordID, e.Field, e.Value, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }
