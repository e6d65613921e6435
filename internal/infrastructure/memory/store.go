// Package memory implementa los puertos de persistencia en memoria.
// Respaldo de los tests de casos de uso y handlers, y de STORAGE_DRIVER=memory. Los datos no sobreviven al proceso.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.ExpenseRepository  = (*ExpenseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.SettingRepository  = (*SettingRepo)(nil)
	_ repository.FinanceSource      = (*Store)(nil)
)

// Store guarda todas las colecciones detrás de un mutex.
type Store struct {
	mu        sync.Mutex
	products  map[string]entity.Product
	customers map[string]entity.Customer
	expenses  map[string]entity.Expense
	sales     []entity.Sale
	settings  map[string]decimal.Decimal
	failures  map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:  make(map[string]entity.Product),
		customers: make(map[string]entity.Customer),
		expenses:  make(map[string]entity.Expense),
		settings:  make(map[string]decimal.Decimal),
		failures:  make(map[string]error),
	}
}

// Fail hace que la operación op ("ListSales", "CreateBatch", ...) devuelva err.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) failure(op string) error {
	return s.failures[op]
}

// Products repositorio de productos sobre el store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Customers repositorio de clientas sobre el store.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// Expenses repositorio de gastos sobre el store.
func (s *Store) Expenses() *ExpenseRepo { return &ExpenseRepo{s: s} }

// Sales repositorio de ventas sobre el store.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

// Settings repositorio de preferencias sobre el store.
func (s *Store) Settings() *SettingRepo { return &SettingRepo{s: s} }

// ─── FinanceSource ────────────────────────────────────────────────────────────

// ListSales devuelve las ventas con producto y clienta resueltos al momento de la consulta.
func (s *Store) ListSales(_ context.Context) ([]entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListSales"); err != nil {
		return nil, err
	}
	out := make([]entity.Sale, len(s.sales))
	for i, sale := range s.sales {
		out[i] = s.joined(sale)
	}
	return out, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]entity.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListExpenses"); err != nil {
		return nil, err
	}
	out := make([]entity.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) ListProducts(_ context.Context) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListProducts"); err != nil {
		return nil, err
	}
	return s.sortedProducts(), nil
}

func (s *Store) ListCustomers(_ context.Context) ([]entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ListCustomers"); err != nil {
		return nil, err
	}
	out := make([]entity.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) joined(sale entity.Sale) entity.Sale {
	sale.Product, sale.Customer = nil, nil
	if p, ok := s.products[sale.ProductID]; ok {
		sale.Product = &p
	}
	if c, ok := s.customers[sale.CustomerID]; ok {
		sale.Customer = &c
	}
	return sale
}

func (s *Store) sortedProducts() []entity.Product {
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ─── Tx ───────────────────────────────────────────────────────────────────────

// TxRunner simula una transacción: si fn falla revierte solo los cambios hechos por fn.
// Otras transacciones que confirmaron mientras tanto no se tocan.
type TxRunner struct {
	s *Store
}

// TxRunner devuelve el runner transaccional del store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

func (t *TxRunner) RunCheckout(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	products := &txProductRepo{ProductRepo: t.s.Products(), decrements: make(map[string]int)}
	sales := &txSaleRepo{SaleRepo: t.s.Sales()}

	if err := fn(products, sales); err != nil {
		t.s.rollback(products.decrements, sales.created)
		return err
	}
	return nil
}

// rollback devuelve el stock descontado y quita las ventas creadas por una transacción.
func (s *Store) rollback(decrements map[string]int, created []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, qty := range decrements {
		if p, ok := s.products[id]; ok {
			p.Stock += qty
			s.products[id] = p
		}
	}
	if len(created) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(created))
	for _, id := range created {
		drop[id] = struct{}{}
	}
	kept := s.sales[:0]
	for _, sale := range s.sales {
		if _, ok := drop[sale.ID]; !ok {
			kept = append(kept, sale)
		}
	}
	s.sales = kept
}

// txProductRepo registra los descuentos de stock de la transacción.
type txProductRepo struct {
	*ProductRepo
	decrements map[string]int
}

func (r *txProductRepo) DecrementStock(ctx context.Context, id string, qty int) error {
	if err := r.ProductRepo.DecrementStock(ctx, id, qty); err != nil {
		return err
	}
	r.decrements[id] += qty
	return nil
}

// txSaleRepo registra los ids de las ventas creadas por la transacción.
type txSaleRepo struct {
	*SaleRepo
	created []string
}

func (r *txSaleRepo) CreateBatch(ctx context.Context, sales []*entity.Sale) error {
	if err := r.SaleRepo.CreateBatch(ctx, sales); err != nil {
		return err
	}
	for _, sale := range sales {
		r.created = append(r.created, sale.ID)
	}
	return nil
}

// ─── Products ─────────────────────────────────────────────────────────────────

type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.s.sortedProducts()
	out := make([]*entity.Product, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, below int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("ListLowStock"); err != nil {
		return nil, err
	}
	all := r.s.sortedProducts()
	out := make([]*entity.Product, 0)
	for i := range all {
		if all[i].Stock < below {
			out = append(out, &all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) DecrementStock(_ context.Context, id string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock < qty {
		return fmt.Errorf("producto %s: %w", id, domain.ErrInsufficientStock)
	}
	p.Stock -= qty
	r.s.products[id] = p
	return nil
}

// ─── Customers ────────────────────────────────────────────────────────────────

type CustomerRepo struct{ s *Store }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	all, err := r.s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Customer, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

// ─── Expenses ─────────────────────────────────────────────────────────────────

type ExpenseRepo struct{ s *Store }

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *ExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *ExpenseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.expenses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.expenses, id)
	return nil
}

func (r *ExpenseRepo) List(ctx context.Context) ([]*entity.Expense, error) {
	all, err := r.s.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	out := make([]*entity.Expense, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

// ─── Sales ────────────────────────────────────────────────────────────────────

type SaleRepo struct{ s *Store }

func (r *SaleRepo) CreateBatch(_ context.Context, sales []*entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("CreateBatch"); err != nil {
		return err
	}
	for _, sale := range sales {
		v := *sale
		v.Product, v.Customer = nil, nil
		r.s.sales = append(r.s.sales, v)
	}
	return nil
}

func (r *SaleRepo) ListByOrder(_ context.Context, orderID string) ([]entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Sale, 0)
	for _, sale := range r.s.sales {
		if sale.OrderID == orderID {
			out = append(out, r.s.joined(sale))
		}
	}
	return out, nil
}

// ─── Settings ─────────────────────────────────────────────────────────────────

type SettingRepo struct{ s *Store }

func (r *SettingRepo) GetDecimal(_ context.Context, key string) (decimal.Decimal, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("GetDecimal"); err != nil {
		return decimal.Zero, false, err
	}
	v, ok := r.s.settings[key]
	return v, ok, nil
}

func (r *SettingRepo) SetDecimal(_ context.Context, key string, value decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[key] = value
	return nil
}
