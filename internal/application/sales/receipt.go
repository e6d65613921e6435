package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// ReceiptUseCase arma el recibo PDF de un pedido.
type ReceiptUseCase struct {
	sales     repository.SaleRepository
	generator ReceiptGenerator
	storeName string
	loc       *time.Location
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(sales repository.SaleRepository, generator ReceiptGenerator, storeName string, loc *time.Location) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, generator: generator, storeName: storeName, loc: loc}
}

// GeneratePDF devuelve el PDF del pedido orderID. domain.ErrNotFound si no tiene líneas.
func (uc *ReceiptUseCase) GeneratePDF(ctx context.Context, orderID string) ([]byte, error) {
	lines, err := uc.sales.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("recibo: buscar pedido: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("recibo: pedido %s: %w", orderID, domain.ErrNotFound)
	}
	r := BuildReceipt(uc.storeName, lines, uc.loc)
	pdf, err := uc.generator.GenerateReceipt(r)
	if err != nil {
		return nil, fmt.Errorf("recibo: generar PDF: %w", err)
	}
	return pdf, nil
}

// BuildReceipt resume las líneas de un pedido. Las líneas cuyo producto ya no existe
// aparecen como "Produto removido".
func BuildReceipt(storeName string, lines []entity.Sale, loc *time.Location) *Receipt {
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].CreatedAt.Before(lines[j].CreatedAt) })
	first := lines[0]
	r := &Receipt{
		StoreName:           storeName,
		OrderID:             first.OrderID,
		Date:                first.CreatedAt.In(loc),
		PaymentMethod:       entity.PaymentMethodLabel(first.PaymentMethod),
		DiscountDescription: first.DiscountDescription,
		Subtotal:            decimal.Zero,
		Discount:            decimal.Zero,
		ShippingCharged:     decimal.Zero,
		Total:               decimal.Zero,
		Lines:               make([]ReceiptLine, 0, len(lines)),
	}
	if first.Customer != nil {
		r.CustomerName = first.Customer.Name
		r.CustomerPhone = first.Customer.Phone
	}
	for _, s := range lines {
		l := ReceiptLine{
			ProductName: "Produto removido",
			Quantity:    s.Amount,
			Gross:       s.Value.Add(s.Discount),
			Discount:    s.Discount,
			Value:       s.Value,
		}
		if s.Product != nil {
			l.ProductName = s.Product.Name
			l.Size = s.Product.Size
			l.Color = s.Product.Color
		}
		r.Lines = append(r.Lines, l)
		r.Subtotal = r.Subtotal.Add(l.Gross)
		r.Discount = r.Discount.Add(s.Discount)
		r.ShippingCharged = r.ShippingCharged.Add(s.ShippingCharged)
		r.Total = r.Total.Add(s.Value).Add(s.ShippingCharged)
	}
	return r
}
