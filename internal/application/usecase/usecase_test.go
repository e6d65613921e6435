package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/finance"
	"github.com/jhoicas/boutique-api/internal/infrastructure/memory"
)

var brt = time.FixedZone("BRT", -3*3600)

func fixed(t time.Time) func() time.Time { return func() time.Time { return t } }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strp(s string) *string { return &s }

// ─── Productos ────────────────────────────────────────────────────────────────

func newProducts(st *memory.Store, now time.Time) *ProductUseCase {
	uc := NewProductUseCase(st.Products(), brt)
	uc.now = fixed(now)
	return uc
}

func TestProduct_CreateNormalizaYCalculaEstado(t *testing.T) {
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, brt)
	uc := newProducts(memory.NewStore(), now)

	got, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:          "  Vestido Linho ",
		ReferenceCode: " vl-01 ",
		PurchasePrice: "45,90",
		Price:         "R$ 129,90",
		Stock:         1,
		PurchaseDate:  "2024-05-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vestido Linho", got.Name)
	assert.Equal(t, "VL-01", got.ReferenceCode)
	assert.True(t, got.Price.Equal(dec("129.90")))
	assert.True(t, got.PurchasePrice.Equal(dec("45.90")))
	assert.Equal(t, entity.DefaultExpectedDays, got.ExpectedDays)
	require.NotNil(t, got.Aging)
	assert.Equal(t, "saida_rapida", got.Aging.Status)
	assert.Equal(t, "Saída Rápida", got.Aging.Label)
}

func TestProduct_CreateRechazaEntradas(t *testing.T) {
	uc := newProducts(memory.NewStore(), time.Now())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: " ", Price: "1", PurchasePrice: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "x", Price: "-1", PurchasePrice: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "x", Price: "1", PurchasePrice: "1", Stock: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "x", Price: "abc", PurchasePrice: "1"})
	var ce *finance.ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "price", ce.Field)
}

func TestProduct_UpdateParcialYNoEncontrado(t *testing.T) {
	st := memory.NewStore()
	uc := newProducts(st, time.Now())
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Saia", Price: "80", PurchasePrice: "30", Stock: 2, Color: "Azul"})
	require.NoError(t, err)

	stock := 5
	got, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: strp("99,00"), Stock: &stock})
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(dec("99")))
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, "Azul", got.Color)

	_, err = uc.Update(ctx, "nada", dto.UpdateProductRequest{Name: strp("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByID(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "nada"), domain.ErrNotFound)
}

func TestProduct_ReplenishCreaVariante(t *testing.T) {
	st := memory.NewStore()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, brt)
	uc := newProducts(st, now)
	ctx := context.Background()
	src, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Blusa", ReferenceCode: "BL", Price: "60", PurchasePrice: "25", Size: "M", ExpectedDays: 45})
	require.NoError(t, err)

	got, err := uc.Replenish(ctx, src.ID, dto.ReplenishRequest{Stock: 4})
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, got.ID)
	assert.Equal(t, 4, got.Stock)
	assert.Equal(t, "BL", got.ReferenceCode)
	assert.Equal(t, "M", got.Size)
	assert.Equal(t, 45, got.ExpectedDays)
	require.NotNil(t, got.PurchaseDate)
	assert.True(t, got.PurchaseDate.Equal(now))

	_, err = uc.Replenish(ctx, src.ID, dto.ReplenishRequest{Stock: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
}

func TestProduct_ListBuscaPorColorSinAcento(t *testing.T) {
	st := memory.NewStore()
	uc := newProducts(st, time.Now())
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Calça", Price: "1", PurchasePrice: "1", Color: "Marrom"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Camisa", Price: "1", PurchasePrice: "1", Color: "Branca"})
	require.NoError(t, err)

	got, err := uc.List(ctx, "calca", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Calça", got.Items[0].Name)
}

// ─── Inventario ───────────────────────────────────────────────────────────────

func TestInventory_GroupsPorReferencia(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	for _, p := range []entity.Product{
		{ID: "1", Name: "Vestido", ReferenceCode: "VX", PurchasePrice: dec("10"), Stock: 1},
		{ID: "2", Name: "Vestido", ReferenceCode: "VX", PurchasePrice: dec("20"), Stock: 3},
		{ID: "3", Name: "Brinco", PurchasePrice: dec("5"), Stock: 2},
	} {
		p := p
		require.NoError(t, st.Products().Create(ctx, &p))
	}
	uc := NewInventoryUseCase(st)

	groups, err := uc.Groups(ctx, "")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "SEM-REF", groups[0].Reference)
	assert.Equal(t, "VX", groups[1].Reference)
	assert.Equal(t, 4, groups[1].TotalStock)
	assert.True(t, groups[1].AverageCost.Equal(dec("17.5")), groups[1].AverageCost.String())
	assert.Len(t, groups[1].Variants, 2)

	groups, err = uc.Groups(ctx, "brinco")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "SEM-REF", groups[0].Reference)
}

// ─── Clientas ─────────────────────────────────────────────────────────────────

func TestCustomer_CreateYWhatsApp(t *testing.T) {
	st := memory.NewStore()
	uc := NewCustomerUseCase(st.Customers(), brt)
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Maria Clara", Phone: "(11) 98888-7777", Instagram: "@mclara", Birthday: "1990-07-04"})
	require.NoError(t, err)
	assert.Equal(t, "11988887777", c.Phone)
	assert.Equal(t, "mclara", c.Instagram)
	require.NotNil(t, c.Birthday)
	assert.Equal(t, time.July, c.Birthday.Month())

	link, err := uc.WhatsAppLink(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5511988887777?text=Ol%C3%A1%20Maria%20Clara%20%E2%9C%A8%2C%20tudo%20bem%3F", link.URL)

	_, err = uc.WhatsAppLink(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Sem Fone", Phone: "--"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomer_WhatsAppTelefonoCorto(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, st.Customers().Create(ctx, &entity.Customer{ID: "c1", Name: "Bia", Phone: "1234"}))
	uc := NewCustomerUseCase(st.Customers(), brt)

	_, err := uc.WhatsAppLink(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Gastos ───────────────────────────────────────────────────────────────────

func TestExpense_CRUDYResumen(t *testing.T) {
	st := memory.NewStore()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, brt)
	uc := NewExpenseUseCase(st.Expenses(), brt)
	uc.now = fixed(now)
	ctx := context.Background()

	rent, err := uc.Create(ctx, dto.ExpenseRequest{Description: "Aluguel", Amount: "1.500,00", Category: entity.ExpenseFixo})
	require.NoError(t, err)
	assert.True(t, rent.Date.Equal(now))

	_, err = uc.Create(ctx, dto.ExpenseRequest{Description: "Anúncio", Amount: "200", Category: entity.ExpenseMarketing, Date: "2024-02-10"})
	require.NoError(t, err)

	sum, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, sum.MonthTotal.Equal(dec("1500")), sum.MonthTotal.String())
	assert.True(t, sum.AllTimeTotal.Equal(dec("1700")))
	assert.Equal(t, 1, sum.MonthCount)
	assert.Equal(t, 2, sum.Count)

	upd, err := uc.Update(ctx, rent.ID, dto.ExpenseRequest{Description: "Aluguel loja", Amount: "1600", Category: entity.ExpenseFixo, Date: "2024-03-01"})
	require.NoError(t, err)
	assert.True(t, upd.Amount.Equal(dec("1600")))

	list, err := uc.List(ctx, "anuncio", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, entity.ExpenseMarketing, list.Items[0].Category)

	require.NoError(t, uc.Delete(ctx, rent.ID))
	assert.ErrorIs(t, uc.Delete(ctx, rent.ID), domain.ErrNotFound)
}

func TestExpense_Validaciones(t *testing.T) {
	uc := NewExpenseUseCase(memory.NewStore().Expenses(), brt)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.ExpenseRequest{Description: "x", Amount: "10", Category: "Luz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.ExpenseRequest{Description: "", Amount: "10", Category: entity.ExpenseOutros})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.ExpenseRequest{Description: "x", Amount: "-3", Category: entity.ExpenseOutros})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.ExpenseRequest{Description: "x", Amount: "", Category: entity.ExpenseOutros})
	assert.ErrorIs(t, err, finance.ErrMissingNumber)

	_, err = uc.Update(ctx, "nada", dto.ExpenseRequest{Description: "x", Amount: "1", Category: entity.ExpenseOutros})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
