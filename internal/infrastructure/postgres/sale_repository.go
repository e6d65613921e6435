package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/boutique-api/internal/domain"
	"github.com/jhoicas/boutique-api/internal/domain/entity"
	"github.com/jhoicas/boutique-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// saleJoinedRow venta con producto y clienta (LEFT JOIN: las columnas p_* y c_* pueden ser NULL).
type saleJoinedRow struct {
	ID                  string         `db:"id"`
	OrderID             string         `db:"order_id"`
	CustomerID          *string        `db:"customer_id"`
	ProductID           *string        `db:"product_id"`
	Amount              int            `db:"amount"`
	Value               pgtype.Numeric `db:"value"`
	Discount            pgtype.Numeric `db:"discount"`
	DiscountDescription string         `db:"discount_description"`
	PaymentMethod       string         `db:"payment_method"`
	ShippingCharged     pgtype.Numeric `db:"shipping_charged"`
	ShippingCost        pgtype.Numeric `db:"shipping_cost"`
	CreatedAt           time.Time      `db:"created_at"`

	PID            *string        `db:"p_id"`
	PName          *string        `db:"p_name"`
	PReference     *string        `db:"p_reference_code"`
	PPurchasePrice pgtype.Numeric `db:"p_purchase_price"`
	PPrice         pgtype.Numeric `db:"p_price"`
	PStock         *int           `db:"p_stock"`
	PSize          *string        `db:"p_size"`
	PColor         *string        `db:"p_color"`
	PPurchaseDate  *time.Time     `db:"p_purchase_date"`
	PExpectedDays  *int           `db:"p_expected_days"`
	PCreatedAt     *time.Time     `db:"p_created_at"`

	CID        *string    `db:"c_id"`
	CName      *string    `db:"c_name"`
	CPhone     *string    `db:"c_phone"`
	CEmail     *string    `db:"c_email"`
	CInstagram *string    `db:"c_instagram"`
	CBirthday  *time.Time `db:"c_birthday"`
	CCreatedAt *time.Time `db:"c_created_at"`
}

func salesJoinedQuery() sq.SelectBuilder {
	return psql.Select(
		"s.id", "s.order_id", "s.customer_id", "s.product_id", "s.amount", "s.value", "s.discount",
		"s.discount_description", "s.payment_method", "s.shipping_charged", "s.shipping_cost", "s.created_at",
		"p.id AS p_id", "p.name AS p_name", "p.reference_code AS p_reference_code",
		"p.purchase_price AS p_purchase_price", "p.price AS p_price", "p.stock AS p_stock",
		"p.size AS p_size", "p.color AS p_color", "p.purchase_date AS p_purchase_date",
		"p.expected_days AS p_expected_days", "p.created_at AS p_created_at",
		"c.id AS c_id", "c.name AS c_name", "c.phone AS c_phone", "c.email AS c_email",
		"c.instagram AS c_instagram", "c.birthday AS c_birthday", "c.created_at AS c_created_at",
	).
		From("sales s").
		LeftJoin("products p ON p.id = s.product_id").
		LeftJoin("customers c ON c.id = s.customer_id")
}

func (r saleJoinedRow) toEntity() (entity.Sale, error) {
	c := numericConv{recordID: r.ID}
	s := entity.Sale{
		ID:                  r.ID,
		OrderID:             r.OrderID,
		CustomerID:          deref(r.CustomerID),
		ProductID:           deref(r.ProductID),
		Amount:              r.Amount,
		Value:               c.required(r.Value, "value"),
		Discount:            c.optional(r.Discount, "discount"),
		DiscountDescription: r.DiscountDescription,
		PaymentMethod:       r.PaymentMethod,
		ShippingCharged:     c.optional(r.ShippingCharged, "shipping_charged"),
		ShippingCost:        c.optional(r.ShippingCost, "shipping_cost"),
		CreatedAt:           r.CreatedAt,
	}
	if c.err != nil {
		return entity.Sale{}, c.err
	}

	if r.PID != nil {
		pc := numericConv{recordID: *r.PID}
		p := &entity.Product{
			ID:            *r.PID,
			Name:          deref(r.PName),
			ReferenceCode: deref(r.PReference),
			PurchasePrice: pc.required(r.PPurchasePrice, "purchase_price"),
			Price:         pc.optional(r.PPrice, "price"),
			Size:          deref(r.PSize),
			Color:         deref(r.PColor),
			PurchaseDate:  r.PPurchaseDate,
		}
		if pc.err != nil {
			return entity.Sale{}, pc.err
		}
		if r.PStock != nil {
			p.Stock = *r.PStock
		}
		if r.PExpectedDays != nil {
			p.ExpectedDays = *r.PExpectedDays
		}
		if r.PCreatedAt != nil {
			p.CreatedAt = *r.PCreatedAt
		}
		s.Product = p
	}

	if r.CID != nil {
		cu := &entity.Customer{
			ID:        *r.CID,
			Name:      deref(r.CName),
			Phone:     deref(r.CPhone),
			Email:     deref(r.CEmail),
			Instagram: deref(r.CInstagram),
			Birthday:  r.CBirthday,
		}
		if r.CCreatedAt != nil {
			cu.CreatedAt = *r.CCreatedAt
		}
		s.Customer = cu
	}
	return s, nil
}

func selectSales(ctx context.Context, q Querier, b sq.SelectBuilder) ([]entity.Sale, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sales: %w", err)
	}
	var rows []saleJoinedRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	out := make([]entity.Sale, 0, len(rows))
	for _, row := range rows {
		s, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SaleRepo implementación del puerto SaleRepository.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio (pool o tx).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateBatch inserta todas las líneas en un único viaje a la base (pgx.Batch).
// Usar dentro de una transacción para que el pedido sea atómico.
func (r *SaleRepo) CreateBatch(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	query := `
		INSERT INTO sales (id, order_id, customer_id, product_id, amount, value, discount, discount_description,
		                   payment_method, shipping_charged, shipping_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	b := &pgx.Batch{}
	for _, s := range sales {
		b.Queue(query,
			s.ID, s.OrderID, nullIfEmpty(s.CustomerID), nullIfEmpty(s.ProductID), s.Amount, s.Value, s.Discount,
			s.DiscountDescription, s.PaymentMethod, s.ShippingCharged, s.ShippingCost, s.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, b)
	for i := range sales {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isForeignKeyViolation(err) {
				return fmt.Errorf("insert sale %d: %w", i+1, domain.ErrNotFound)
			}
			if isCheckViolation(err) {
				return fmt.Errorf("insert sale %d: %w", i+1, domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert sale %d: %w", i+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert sales: %w", err)
	}
	return nil
}

// ListByOrder líneas de un pedido con producto y clienta.
func (r *SaleRepo) ListByOrder(ctx context.Context, orderID string) ([]entity.Sale, error) {
	return selectSales(ctx, r.q, salesJoinedQuery().
		Where(sq.Eq{"s.order_id": orderID}).
		OrderBy("s.created_at ASC", "p_name ASC"))
}
