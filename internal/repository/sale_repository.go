package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborline/fishmarket-service/internal/domain"
)

// SaleRepository handles persistence for recorded sales.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Sale, error)
	List(ctx context.Context, accountID string, filter SaleFilter) ([]domain.Sale, error)
}

// SaleFilter defines query params for sale listing.
type SaleFilter struct {
	ProductID     *string
	ContactID     *string
	PaymentStatus *domain.PaymentStatus
	SoldFrom      *time.Time
	SoldTo        *time.Time
	Limit         int
	Offset        int
}

type saleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository instantiates the repository.
func NewSaleRepository(pool *pgxpool.Pool) SaleRepository {
	return &saleRepository{pool: pool}
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	const query = `
        INSERT INTO sales (account_id, product_id, contact_id, recorded_by, quantity, unit_price, total, payment_status, sold_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		sale.AccountID,
		sale.ProductID,
		sale.ContactID,
		sale.RecordedBy,
		sale.Quantity,
		sale.UnitPrice,
		sale.Total,
		sale.PaymentStatus,
		sale.SoldAt,
	).Scan(&sale.ID, &sale.CreatedAt)
}

func (r *saleRepository) GetByID(ctx context.Context, accountID, id string) (*domain.Sale, error) {
	const query = `
        SELECT id, account_id, product_id, contact_id, recorded_by, quantity, unit_price, total, payment_status, sold_at, created_at
        FROM sales WHERE id=$1 AND account_id=$2`

	var sale domain.Sale
	if err := r.pool.QueryRow(ctx, query, id, accountID).Scan(
		&sale.ID,
		&sale.AccountID,
		&sale.ProductID,
		&sale.ContactID,
		&sale.RecordedBy,
		&sale.Quantity,
		&sale.UnitPrice,
		&sale.Total,
		&sale.PaymentStatus,
		&sale.SoldAt,
		&sale.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, accountID string, filter SaleFilter) ([]domain.Sale, error) {
	query := `
        SELECT id, account_id, product_id, contact_id, recorded_by, quantity, unit_price, total, payment_status, sold_at, created_at
        FROM sales`
	args := []any{accountID}
	clauses := []string{"account_id=$1"}

	if filter.ProductID != nil {
		args = append(args, *filter.ProductID)
		clauses = append(clauses, fmt.Sprintf("product_id=$%d", len(args)))
	}
	if filter.ContactID != nil {
		args = append(args, *filter.ContactID)
		clauses = append(clauses, fmt.Sprintf("contact_id=$%d", len(args)))
	}
	if filter.PaymentStatus != nil {
		args = append(args, *filter.PaymentStatus)
		clauses = append(clauses, fmt.Sprintf("payment_status=$%d", len(args)))
	}
	if filter.SoldFrom != nil {
		args = append(args, *filter.SoldFrom)
		clauses = append(clauses, fmt.Sprintf("sold_at >= $%d", len(args)))
	}
	if filter.SoldTo != nil {
		args = append(args, *filter.SoldTo)
		clauses = append(clauses, fmt.Sprintf("sold_at <= $%d", len(args)))
	}
	query += " WHERE " + strings.Join(clauses, " AND ")

	query += " ORDER BY sold_at DESC"
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.AccountID,
			&sale.ProductID,
			&sale.ContactID,
			&sale.RecordedBy,
			&sale.Quantity,
			&sale.UnitPrice,
			&sale.Total,
			&sale.PaymentStatus,
			&sale.SoldAt,
			&sale.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sale)
	}
	return result, rows.Err()
}
