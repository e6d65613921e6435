package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/finance"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/textsearch"
)

// ExpenseUseCase CRUD de gastos y totales.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
	loc  *time.Location
	now  func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, loc *time.Location) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, loc: loc, now: time.Now}
}

// Create registra un gasto. Sin fecha se usa el momento actual.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e := &entity.Expense{ID: uuid.New().String(), CreatedAt: uc.now()}
	if err := uc.apply(e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("gasto: crear: %w", err)
	}
	resp := toExpenseResponse(e)
	return &resp, nil
}

// Update reemplaza descripción, monto, categoría y fecha.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("gasto: buscar: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("gasto %s: %w", id, domain.ErrNotFound)
	}
	if err := uc.apply(e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("gasto: actualizar: %w", err)
	}
	resp := toExpenseResponse(e)
	return &resp, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("gasto: eliminar: %w", err)
	}
	return nil
}

// List gastos más recientes primero, con búsqueda por descripción o categoría.
func (uc *ExpenseUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ExpenseListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("gasto: listar: %w", err)
	}
	found := textsearch.Filter(list, search, func(e *entity.Expense) []string {
		return []string{e.Description, e.Category}
	})
	items, meta := dto.Paginate(found, page)
	out := make([]dto.ExpenseResponse, len(items))
	for i, e := range items {
		out[i] = toExpenseResponse(e)
	}
	return &dto.ExpenseListResponse{Items: out, Page: meta}, nil
}

// Summary totales del mes en curso y de todo el historial.
func (uc *ExpenseUseCase) Summary(ctx context.Context) (*dto.ExpenseSummaryDTO, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("gasto: resumen: %w", err)
	}
	period, err := finance.ResolvePeriod(finance.Filter{Type: finance.FilterMonthly}, uc.now().In(uc.loc))
	if err != nil {
		return nil, err
	}
	out := &dto.ExpenseSummaryDTO{MonthTotal: decimal.Zero, AllTimeTotal: decimal.Zero, Count: len(list)}
	for _, e := range list {
		out.AllTimeTotal = out.AllTimeTotal.Add(e.Amount)
		if period.Current.Contains(e.Date) {
			out.MonthTotal = out.MonthTotal.Add(e.Amount)
			out.MonthCount++
		}
	}
	return out, nil
}

func (uc *ExpenseUseCase) apply(e *entity.Expense, in dto.ExpenseRequest) error {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return fmt.Errorf("gasto: descripción requerida: %w", domain.ErrInvalidInput)
	}
	if !entity.IsValidExpenseCategory(in.Category) {
		return fmt.Errorf("gasto: categoría %q: %w", in.Category, domain.ErrInvalidInput)
	}
	amount, err := finance.ParseMoney(e.ID, "amount", in.Amount)
	if err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("gasto: monto negativo: %w", domain.ErrInvalidInput)
	}
	date := uc.now().In(uc.loc)
	d, err := dto.ParseDate("date", in.Date, uc.loc)
	if err != nil {
		return err
	}
	if d != nil {
		date = *d
	}
	e.Description = desc
	e.Amount = amount
	e.Category = in.Category
	e.Date = date
	return nil
}

func toExpenseResponse(e *entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}
