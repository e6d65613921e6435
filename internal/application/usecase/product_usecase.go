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
	"github.com/jhoicas/boutique-api/internal/domain/inventory"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
	"github.com/jhoicas/boutique-api/pkg/textsearch"
)

// ProductUseCase casos de uso CRUD para productos y reposición de variantes.
type ProductUseCase struct {
	repo repository.ProductRepository
	loc  *time.Location
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, loc *time.Location) *ProductUseCase {
	return &ProductUseCase{repo: repo, loc: loc, now: time.Now}
}

// Create crea un nuevo producto. La referencia se guarda normalizada.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("producto: nombre requerido: %w", domain.ErrInvalidInput)
	}
	price, err := finance.ParseMoney("", "price", in.Price)
	if err != nil {
		return nil, err
	}
	cost, err := finance.ParseMoney("", "purchase_price", in.PurchasePrice)
	if err != nil {
		return nil, err
	}
	purchaseDate, err := dto.ParseDate("purchase_date", in.PurchaseDate, uc.loc)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		ReferenceCode: inventory.NormalizeReference(in.ReferenceCode),
		PurchasePrice: cost,
		Price:         price,
		Stock:         in.Stock,
		Size:          strings.TrimSpace(in.Size),
		Color:         strings.TrimSpace(in.Color),
		PurchaseDate:  purchaseDate,
		ExpectedDays:  in.ExpectedDays,
		CreatedAt:     uc.now(),
	}
	if product.ExpectedDays == 0 {
		product.ExpectedDays = entity.DefaultExpectedDays
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("producto: crear: %w", err)
	}
	resp := ToProductResponse(product, uc.now())
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product, uc.now())
	return &resp, nil
}

// Update aplica los campos presentes en el request.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.ReferenceCode != nil {
		product.ReferenceCode = inventory.NormalizeReference(*in.ReferenceCode)
	}
	if in.Price != nil {
		if product.Price, err = finance.ParseMoney(id, "price", *in.Price); err != nil {
			return nil, err
		}
	}
	if in.PurchasePrice != nil {
		if product.PurchasePrice, err = finance.ParseMoney(id, "purchase_price", *in.PurchasePrice); err != nil {
			return nil, err
		}
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Size != nil {
		product.Size = strings.TrimSpace(*in.Size)
	}
	if in.Color != nil {
		product.Color = strings.TrimSpace(*in.Color)
	}
	if in.PurchaseDate != nil {
		if product.PurchaseDate, err = dto.ParseDate("purchase_date", *in.PurchaseDate, uc.loc); err != nil {
			return nil, err
		}
	}
	if in.ExpectedDays != nil {
		product.ExpectedDays = *in.ExpectedDays
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("producto: actualizar: %w", err)
	}
	resp := ToProductResponse(product, uc.now())
	return &resp, nil
}

// List lista productos filtrando por nombre, referencia, talla o color.
func (uc *ProductUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("producto: listar: %w", err)
	}
	found := textsearch.Filter(list, search, func(p *entity.Product) []string {
		return []string{p.Name, p.ReferenceCode, p.Size, p.Color}
	})
	items, meta := dto.Paginate(found, page)
	now := uc.now()
	out := make([]dto.ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToProductResponse(p, now))
	}
	return &dto.ProductListResponse{Items: out, Page: meta}, nil
}

// Delete elimina un producto por ID. Las ventas existentes conservan la línea sin producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("producto: eliminar: %w", err)
	}
	return nil
}

// Replenish crea una variante nueva copiando el producto con el stock indicado y
// fecha de compra hoy. El original no cambia.
func (uc *ProductUseCase) Replenish(ctx context.Context, id string, in dto.ReplenishRequest) (*dto.ProductResponse, error) {
	if in.Stock <= 0 {
		return nil, fmt.Errorf("producto: reposición con stock %d: %w", in.Stock, domain.ErrInvalidInput)
	}
	source, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	clone := inventory.Replenishment(source, in.Stock, now)
	clone.ID = uuid.New().String()
	clone.CreatedAt = now
	if err := uc.repo.Create(ctx, &clone); err != nil {
		return nil, fmt.Errorf("producto: reponer: %w", err)
	}
	resp := ToProductResponse(&clone, now)
	return &resp, nil
}

func (uc *ProductUseCase) find(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("producto: buscar: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("producto: nombre requerido: %w", domain.ErrInvalidInput)
	case p.Price.LessThan(decimal.Zero), p.PurchasePrice.LessThan(decimal.Zero):
		return fmt.Errorf("producto: precios negativos: %w", domain.ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("producto: stock negativo: %w", domain.ErrInvalidInput)
	case p.ExpectedDays < 0:
		return fmt.Errorf("producto: días esperados negativos: %w", domain.ErrInvalidInput)
	}
	return nil
}

// ToProductResponse convierte el producto al DTO, con su estado de permanencia calculado a now.
func ToProductResponse(p *entity.Product, now time.Time) dto.ProductResponse {
	r := dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		ReferenceCode: p.ReferenceCode,
		PurchasePrice: p.PurchasePrice,
		Price:         p.Price,
		Stock:         p.Stock,
		Size:          p.Size,
		Color:         p.Color,
		PurchaseDate:  p.PurchaseDate,
		ExpectedDays:  p.ExpectedShelfDays(),
		CreatedAt:     p.CreatedAt,
	}
	if a := inventory.AgingOf(p, now); a != nil {
		r.Aging = &dto.AgingDTO{
			Status:       string(a.Status),
			Label:        a.Status.Label(),
			DaysInStock:  a.DaysInStock,
			ExpectedDays: a.ExpectedDays,
		}
	}
	return r
}
