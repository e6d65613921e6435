package sales

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/textsearch"
)

// ListUseCase historial de ventas, más recientes primero.
type ListUseCase struct {
	source repository.FinanceSource
}

// NewListUseCase construye el caso de uso.
func NewListUseCase(source repository.FinanceSource) *ListUseCase {
	return &ListUseCase{source: source}
}

// List filtra por producto, clienta, medio de pago o código de pedido, sin distinguir
// mayúsculas ni acentos, y pagina el resultado.
func (uc *ListUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	all, err := uc.source.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("ventas: listar: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	found := textsearch.Filter(all, search, saleSearchFields)
	items, meta := dto.Paginate(found, page)
	out := make([]dto.SaleResponse, len(items))
	for i := range items {
		out[i] = ToSaleResponse(&items[i])
	}
	return &dto.SaleListResponse{Items: out, Page: meta}, nil
}

func saleSearchFields(s entity.Sale) []string {
	f := []string{s.OrderID, s.PaymentMethod, entity.PaymentMethodLabel(s.PaymentMethod)}
	if s.Product != nil {
		f = append(f, s.Product.Name, s.Product.ReferenceCode)
	}
	if s.Customer != nil {
		f = append(f, s.Customer.Name)
	}
	return f
}
