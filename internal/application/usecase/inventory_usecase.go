package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/textsearch"
)

// InventoryUseCase vista del estoque agrupado por referencia.
type InventoryUseCase struct {
	source repository.FinanceSource
	now    func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(source repository.FinanceSource) *InventoryUseCase {
	return &InventoryUseCase{source: source, now: time.Now}
}

// Groups agrupa las variantes por referencia. La búsqueda filtra variantes antes de agrupar.
func (uc *InventoryUseCase) Groups(ctx context.Context, search string) ([]dto.InventoryGroupDTO, error) {
	products, err := uc.source.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventario: listar productos: %w", err)
	}
	products = textsearch.Filter(products, search, func(p entity.Product) []string {
		return []string{p.Name, p.ReferenceCode, p.Size, p.Color}
	})

	now := uc.now()
	groups := inventory.GroupByReference(products)
	out := make([]dto.InventoryGroupDTO, len(groups))
	for i, g := range groups {
		variants := make([]dto.ProductResponse, len(g.Variants))
		for j := range g.Variants {
			variants[j] = ToProductResponse(&g.Variants[j], now)
		}
		out[i] = dto.InventoryGroupDTO{
			Reference:   g.Reference,
			Name:        g.Name,
			TotalStock:  g.TotalStock,
			AverageCost: g.AverageCost,
			Variants:    variants,
		}
	}
	return out, nil
}
