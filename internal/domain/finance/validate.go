package finance

import (
	"strconv"

	"github.com/jhoicas/boutique-api/internal/domain/entity"
)

// ValidateSale rechaza cantidades no positivas y montos negativos.
// Una venta sin producto no es un error: el agregador la omite.
func ValidateSale(s *entity.Sale) error {
	if s.Amount <= 0 {
		return &ComputationError{RecordID: s.ID, Field: "amount", Value: strconv.Itoa(s.Amount), Err: ErrNonPositiveQuantity}
	}
	if s.Value.IsNegative() {
		return &ComputationError{RecordID: s.ID, Field: "value", Value: s.Value.String(), Err: ErrNegativeValue}
	}
	if s.ShippingCharged.IsNegative() {
		return &ComputationError{RecordID: s.ID, Field: "shipping_charged", Value: s.ShippingCharged.String(), Err: ErrNegativeValue}
	}
	if s.ShippingCost.IsNegative() {
		return &ComputationError{RecordID: s.ID, Field: "shipping_cost", Value: s.ShippingCost.String(), Err: ErrNegativeValue}
	}
	if s.Product != nil && s.Product.PurchasePrice.IsNegative() {
		return &ComputationError{RecordID: s.Product.ID, Field: "purchase_price", Value: s.Product.PurchasePrice.String(), Err: ErrNegativeValue}
	}
	return nil
}

// ValidateExpense rechaza gastos con monto negativo.
func ValidateExpense(e *entity.Expense) error {
	if e.Amount.IsNegative() {
		return &ComputationError{RecordID: e.ID, Field: "amount", Value: e.Amount.String(), Err: ErrNegativeValue}
	}
	return nil
}

func validateRecords(sales []entity.Sale, expenses []entity.Expense) error {
	for i := range sales {
		if err := ValidateSale(&sales[i]); err != nil {
			return err
		}
	}
	for i := range expenses {
		if err := ValidateExpense(&expenses[i]); err != nil {
			return err
		}
	}
	return nil
}
