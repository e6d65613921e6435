package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{
	"id", "name", "reference_code", "purchase_price", "price", "stock",
	"size", "color", "purchase_date", "expected_days", "created_at",
}

// productRow fila de products tal como sale de la base.
type productRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	ReferenceCode string         `db:"reference_code"`
	PurchasePrice pgtype.Numeric `db:"purchase_price"`
	Price         pgtype.Numeric `db:"price"`
	Stock         int            `db:"stock"`
	Size          string         `db:"size"`
	Color         string         `db:"color"`
	PurchaseDate  *time.Time     `db:"purchase_date"`
	ExpectedDays  int            `db:"expected_days"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (r productRow) toEntity() (*entity.Product, error) {
	c := numericConv{recordID: r.ID}
	p := &entity.Product{
		ID:            r.ID,
		Name:          r.Name,
		ReferenceCode: r.ReferenceCode,
		PurchasePrice: c.required(r.PurchasePrice, "purchase_price"),
		Price:         c.required(r.Price, "price"),
		Stock:         r.Stock,
		Size:          r.Size,
		Color:         r.Color,
		PurchaseDate:  r.PurchaseDate,
		ExpectedDays:  r.ExpectedDays,
		CreatedAt:     r.CreatedAt,
	}
	if c.err != nil {
		return nil, c.err
	}
	return p, nil
}

func productsFromRows(rows []productRow) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, reference_code, purchase_price, price, stock, size, color, purchase_date, expected_days, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.ReferenceCode, p.PurchasePrice, p.Price, p.Stock,
		p.Size, p.Color, p.PurchaseDate, p.ExpectedDays, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return fmt.Errorf("insert product: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query, args, err := psql.Select(productColumns...).From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}
	var row productRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity()
}

// GetByIDs obtiene los productos cuyos IDs estén en ids (los inexistentes se omiten).
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}
	query, args, err := psql.Select(productColumns...).From("products").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get products: %w", err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		if isInvalidText(err) {
			return []*entity.Product{}, nil
		}
		return nil, fmt.Errorf("get products: %w", err)
	}
	return productsFromRows(rows)
}

// Update actualiza los datos editables del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, reference_code = $3, purchase_price = $4, price = $5, stock = $6,
		    size = $7, color = $8, purchase_date = $9, expected_days = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.ReferenceCode, p.PurchasePrice, p.Price, p.Stock,
		p.Size, p.Color, p.PurchaseDate, p.ExpectedDays,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update product: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todos los productos ordenados por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.selectMany(ctx, psql.Select(productColumns...).From("products").OrderBy("name ASC", "size ASC"))
}

// ListLowStock productos con stock menor a below.
func (r *ProductRepo) ListLowStock(ctx context.Context, below int) ([]*entity.Product, error) {
	return r.selectMany(ctx, psql.Select(productColumns...).From("products").
		Where(sq.Lt{"stock": below}).
		OrderBy("stock ASC", "name ASC"))
}

func (r *ProductRepo) selectMany(ctx context.Context, b sq.SelectBuilder) ([]*entity.Product, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	var rows []productRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return productsFromRows(rows)
}

// Delete elimina el producto. Las ventas que lo referencian quedan sin producto.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock descuenta qty solo si hay stock suficiente.
func (r *ProductRepo) DecrementStock(ctx context.Context, id string, qty int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock - $2 WHERE id = $1 AND stock >= $2`, id, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", id, domain.ErrInsufficientStock)
	}
	return nil
}
