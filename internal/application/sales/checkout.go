package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/checkout"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/finance"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

// OrderIDLength longitud del código de pedido.
const OrderIDLength = 8

// CheckoutUseCase registra un pedido: valida el carrito, reparte descuento y flete,
// descuenta stock y crea las líneas de venta en una sola transacción.
type CheckoutUseCase struct {
	tx        TxRunner
	products  repository.ProductRepository
	customers repository.CustomerRepository
	loc       *time.Location
	log       zerolog.Logger

	now        func() time.Time
	newOrderID func() (string, error)
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	tx TxRunner,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	loc *time.Location,
	log zerolog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		tx:         tx,
		products:   products,
		customers:  customers,
		loc:        loc,
		log:        log,
		now:        time.Now,
		newOrderID: func() (string, error) { return gonanoid.New(OrderIDLength) },
	}
}

// Checkout registra el pedido y devuelve sus líneas.
//
// Errores: domain.ErrInvalidInput (carrito o medio de pago inválido), domain.ErrNotFound
// (clienta o producto inexistente), domain.ErrInsufficientStock, *finance.ComputationError
// (monto con formato inválido).
func (uc *CheckoutUseCase) Checkout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("checkout: medio de pago %q: %w", in.PaymentMethod, domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("checkout: carrito vacío: %w", domain.ErrInvalidInput)
	}
	if in.CustomerID == "" {
		return nil, fmt.Errorf("checkout: clienta requerida: %w", domain.ErrInvalidInput)
	}

	charges, err := parseCharges(in)
	if err != nil {
		return nil, err
	}
	createdAt, err := uc.saleTime(in.Date)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("checkout: buscar clienta: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("checkout: clienta %s: %w", in.CustomerID, domain.ErrNotFound)
	}

	lines, err := uc.loadLines(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	if err := checkout.CheckStock(lines); err != nil {
		return nil, err
	}
	allocs, err := checkout.Allocate(lines, charges)
	if err != nil {
		return nil, err
	}

	orderID, err := uc.newOrderID()
	if err != nil {
		return nil, fmt.Errorf("checkout: generar código de pedido: %w", err)
	}

	sales := make([]*entity.Sale, len(lines))
	for i, l := range lines {
		sales[i] = &entity.Sale{
			ID:                  uuid.New().String(),
			OrderID:             orderID,
			CustomerID:          customer.ID,
			ProductID:           l.Product.ID,
			Amount:              l.Quantity,
			Value:               allocs[i].Value,
			Discount:            allocs[i].Discount,
			DiscountDescription: in.DiscountDescription,
			PaymentMethod:       in.PaymentMethod,
			ShippingCharged:     allocs[i].ShippingCharged,
			ShippingCost:        allocs[i].ShippingCost,
			CreatedAt:           createdAt,
			Product:             l.Product,
			Customer:            customer,
		}
	}

	err = uc.tx.RunCheckout(ctx, func(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) error {
		for _, l := range lines {
			if err := productRepo.DecrementStock(ctx, l.Product.ID, l.Quantity); err != nil {
				return fmt.Errorf("descontar stock de %s: %w", l.Product.Name, err)
			}
		}
		return saleRepo.CreateBatch(ctx, sales)
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	resp := &dto.CheckoutResponse{
		OrderID:         orderID,
		Discount:        decimal.Zero,
		ShippingCharged: decimal.Zero,
		Total:           decimal.Zero,
		Lines:           make([]dto.SaleResponse, len(sales)),
	}
	for i, s := range sales {
		resp.Lines[i] = ToSaleResponse(s)
		resp.Discount = resp.Discount.Add(s.Discount)
		resp.ShippingCharged = resp.ShippingCharged.Add(s.ShippingCharged)
		resp.Total = resp.Total.Add(s.Value).Add(s.ShippingCharged)
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("customer_id", customer.ID).
		Int("lines", len(sales)).
		Str("total", resp.Total.StringFixed(2)).
		Msg("pedido registrado")
	return resp, nil
}

// loadLines resuelve los productos del carrito con una sola consulta.
func (uc *CheckoutUseCase) loadLines(ctx context.Context, items []dto.CartLineRequest) ([]checkout.Line, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	products, err := uc.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("checkout: buscar productos: %w", err)
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]checkout.Line, len(items))
	for i, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("checkout: producto %s: %w", it.ProductID, domain.ErrNotFound)
		}
		lines[i] = checkout.Line{Product: p, Quantity: it.Quantity}
	}
	return lines, nil
}

// saleTime combina la fecha elegida con la hora actual; sin fecha usa ahora.
func (uc *CheckoutUseCase) saleTime(date string) (time.Time, error) {
	now := uc.now().In(uc.loc)
	d, err := dto.ParseDate("date", date, uc.loc)
	if err != nil || d == nil {
		return now, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), uc.loc), nil
}

func parseCharges(in dto.CheckoutRequest) (checkout.Charges, error) {
	var c checkout.Charges
	var err error
	if c.Discount, err = finance.ParseOptionalMoney("checkout", "discount", in.Discount); err != nil {
		return c, err
	}
	if c.ShippingCharged, err = finance.ParseOptionalMoney("checkout", "shipping_charged", in.ShippingCharged); err != nil {
		return c, err
	}
	if c.ShippingCost, err = finance.ParseOptionalMoney("checkout", "shipping_cost", in.ShippingCost); err != nil {
		return c, err
	}
	return c, nil
}

// ToSaleResponse convierte una línea de venta al DTO de salida.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	r := dto.SaleResponse{
		ID:                  s.ID,
		OrderID:             s.OrderID,
		CustomerID:          s.CustomerID,
		ProductID:           s.ProductID,
		Amount:              s.Amount,
		Value:               s.Value,
		Discount:            s.Discount,
		DiscountDescription: s.DiscountDescription,
		PaymentMethod:       s.PaymentMethod,
		ShippingCharged:     s.ShippingCharged,
		ShippingCost:        s.ShippingCost,
		CreatedAt:           s.CreatedAt,
	}
	if s.Product != nil {
		r.ProductName = s.Product.Name
	}
	if s.Customer != nil {
		r.CustomerName = s.Customer.Name
	}
	return r
}
