package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/application/sales"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/finance"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
)

var brt = time.FixedZone("BRT", -3*3600)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	st := memory.NewStore()
	require.NoError(t, st.Customers().Create(ctx, &entity.Customer{ID: "c1", Name: "Ana", Phone: "11999990000"}))
	require.NoError(t, st.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Vestido", Price: dec("100"), PurchasePrice: dec("40"), Stock: 3}))
	require.NoError(t, st.Products().Create(ctx, &entity.Product{ID: "p2", Name: "Blusa", Price: dec("50"), PurchasePrice: dec("20"), Stock: 1}))
	return st
}

func newCheckout(st *memory.Store) *sales.CheckoutUseCase {
	return sales.NewCheckoutUseCase(st.TxRunner(), st.Products(), st.Customers(), brt, zerolog.Nop())
}

func stockOf(t *testing.T, st *memory.Store, id string) int {
	t.Helper()
	p, err := st.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ─── Checkout ─────────────────────────────────────────────────────────────────

func TestCheckout_RepartoDescuentoYFlete(t *testing.T) {
	st := seed(t)
	uc := newCheckout(st)

	resp, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		CustomerID:      "c1",
		Items:           []dto.CartLineRequest{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}},
		PaymentMethod:   entity.PaymentPix,
		Discount:        "25,00",
		ShippingCharged: "15",
		ShippingCost:    "10",
	})
	require.NoError(t, err)
	require.Len(t, resp.OrderID, sales.OrderIDLength)
	require.Len(t, resp.Lines, 2)

	// bruto 200 y 50: descuento 20 y 5
	assert.True(t, resp.Lines[0].Value.Equal(dec("180")), resp.Lines[0].Value.String())
	assert.True(t, resp.Lines[1].Value.Equal(dec("45")), resp.Lines[1].Value.String())
	assert.True(t, resp.Lines[0].ShippingCharged.Equal(dec("7.5")))
	assert.True(t, resp.Lines[1].ShippingCost.Equal(dec("5")))
	assert.True(t, resp.Discount.Equal(dec("25")))
	assert.True(t, resp.Total.Equal(dec("240")), resp.Total.String())
	for _, l := range resp.Lines {
		assert.Equal(t, resp.OrderID, l.OrderID)
		assert.Equal(t, "Ana", l.CustomerName)
	}

	assert.Equal(t, 1, stockOf(t, st, "p1"))
	assert.Equal(t, 0, stockOf(t, st, "p2"))

	saved, err := st.Sales().ListByOrder(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestCheckout_FechaElegidaConservaHora(t *testing.T) {
	st := seed(t)
	uc := newCheckout(st)

	resp, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		CustomerID:    "c1",
		Items:         []dto.CartLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentDinheiro,
		Date:          "2024-03-10",
	})
	require.NoError(t, err)
	got := resp.Lines[0].CreatedAt.In(brt)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 10, got.Day())
}

func TestCheckout_StockInsuficienteNoEscribe(t *testing.T) {
	st := seed(t)
	uc := newCheckout(st)

	_, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		CustomerID:    "c1",
		Items:         []dto.CartLineRequest{{ProductID: "p2", Quantity: 1}, {ProductID: "p2", Quantity: 1}},
		PaymentMethod: entity.PaymentCartao,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, stockOf(t, st, "p2"))

	all, err := st.ListSales(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCheckout_FalloAlGuardarRestauraStock(t *testing.T) {
	st := seed(t)
	st.Fail("CreateBatch", errors.New("disco lleno"))
	uc := newCheckout(st)

	_, err := uc.Checkout(context.Background(), dto.CheckoutRequest{
		CustomerID:    "c1",
		Items:         []dto.CartLineRequest{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: entity.PaymentPix,
	})
	require.Error(t, err)
	assert.Equal(t, 3, stockOf(t, st, "p1"))
}

func TestCheckout_Validaciones(t *testing.T) {
	base := dto.CheckoutRequest{
		CustomerID:    "c1",
		Items:         []dto.CartLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentPix,
	}
	tests := []struct {
		name   string
		mutate func(r *dto.CheckoutRequest)
		want   error
	}{
		{"medio de pago desconocido", func(r *dto.CheckoutRequest) { r.PaymentMethod = "boleto" }, domain.ErrInvalidInput},
		{"carrito vacío", func(r *dto.CheckoutRequest) { r.Items = nil }, domain.ErrInvalidInput},
		{"sin clienta", func(r *dto.CheckoutRequest) { r.CustomerID = "" }, domain.ErrInvalidInput},
		{"clienta inexistente", func(r *dto.CheckoutRequest) { r.CustomerID = "zz" }, domain.ErrNotFound},
		{"producto inexistente", func(r *dto.CheckoutRequest) { r.Items = []dto.CartLineRequest{{ProductID: "zz", Quantity: 1}} }, domain.ErrNotFound},
		{"cantidad cero", func(r *dto.CheckoutRequest) { r.Items = []dto.CartLineRequest{{ProductID: "p1", Quantity: 0}} }, domain.ErrInvalidInput},
		{"descuento negativo", func(r *dto.CheckoutRequest) { r.Discount = "-5" }, domain.ErrInvalidInput},
		{"fecha inválida", func(r *dto.CheckoutRequest) { r.Date = "10/03/2024" }, domain.ErrInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := seed(t)
			req := base
			tc.mutate(&req)
			_, err := newCheckout(st).Checkout(context.Background(), req)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, 3, stockOf(t, st, "p1"))
		})
	}
}

func TestCheckout_MontoMalFormado(t *testing.T) {
	st := seed(t)
	_, err := newCheckout(st).Checkout(context.Background(), dto.CheckoutRequest{
		CustomerID:      "c1",
		Items:           []dto.CartLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod:   entity.PaymentPix,
		ShippingCharged: "doce",
	})
	var ce *finance.ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "shipping_charged", ce.Field)
	assert.ErrorIs(t, err, finance.ErrMalformedNumber)
}

// ─── Recibo y listado ─────────────────────────────────────────────────────────

type fakeGenerator struct {
	got *sales.Receipt
}

func (g *fakeGenerator) GenerateReceipt(r *sales.Receipt) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

func TestReceipt_ResumeElPedido(t *testing.T) {
	st := seed(t)
	resp, err := newCheckout(st).Checkout(context.Background(), dto.CheckoutRequest{
		CustomerID:          "c1",
		Items:               []dto.CartLineRequest{{ProductID: "p1", Quantity: 1}, {ProductID: "p2", Quantity: 1}},
		PaymentMethod:       entity.PaymentCartao,
		Discount:            "15",
		DiscountDescription: "aniversário",
		ShippingCharged:     "10",
	})
	require.NoError(t, err)

	gen := &fakeGenerator{}
	uc := sales.NewReceiptUseCase(st.Sales(), gen, "Boutique Teste", brt)
	pdf, err := uc.GeneratePDF(context.Background(), resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))

	r := gen.got
	require.NotNil(t, r)
	assert.Equal(t, "Boutique Teste", r.StoreName)
	assert.Equal(t, "Ana", r.CustomerName)
	assert.Equal(t, "Cartão", r.PaymentMethod)
	assert.Equal(t, "aniversário", r.DiscountDescription)
	assert.Len(t, r.Lines, 2)
	assert.True(t, r.Subtotal.Equal(dec("150")), r.Subtotal.String())
	assert.True(t, r.Discount.Equal(dec("15")))
	assert.True(t, r.Total.Equal(dec("145")), r.Total.String())
}

func TestReceipt_PedidoInexistente(t *testing.T) {
	st := seed(t)
	uc := sales.NewReceiptUseCase(st.Sales(), &fakeGenerator{}, "x", brt)
	_, err := uc.GeneratePDF(context.Background(), "nada")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildReceipt_ProductoEliminado(t *testing.T) {
	lines := []entity.Sale{{OrderID: "o1", Amount: 1, Value: dec("30"), Discount: dec("0"), ShippingCharged: dec("0")}}
	r := sales.BuildReceipt("x", lines, brt)
	assert.Equal(t, "Produto removido", r.Lines[0].ProductName)
	assert.Empty(t, r.CustomerName)
	assert.True(t, r.Total.Equal(dec("30")))
}

func TestList_BuscaSinAcentosYPagina(t *testing.T) {
	st := seed(t)
	ctx := context.Background()
	require.NoError(t, st.Customers().Create(ctx, &entity.Customer{ID: "c2", Name: "Júlia"}))
	uc := newCheckout(st)
	_, err := uc.Checkout(ctx, dto.CheckoutRequest{CustomerID: "c1", Items: []dto.CartLineRequest{{ProductID: "p1", Quantity: 1}}, PaymentMethod: entity.PaymentPix})
	require.NoError(t, err)
	_, err = uc.Checkout(ctx, dto.CheckoutRequest{CustomerID: "c2", Items: []dto.CartLineRequest{{ProductID: "p1", Quantity: 1}}, PaymentMethod: entity.PaymentPix})
	require.NoError(t, err)

	list := sales.NewListUseCase(st)
	got, err := list.List(ctx, "julia", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Júlia", got.Items[0].CustomerName)

	got, err = list.List(ctx, "", dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Page.Total)
}
