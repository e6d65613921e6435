package dto

import "github.com/shopspring/decimal"

// InventoryGroupDTO variantes de una misma referencia.
type InventoryGroupDTO struct {
	Reference   string            `json:"reference"`
	Name        string            `json:"name"`
	TotalStock  int               `json:"total_stock"`
	AverageCost decimal.Decimal   `json:"average_cost"`
	Variants    []ProductResponse `json:"variants"`
}
