package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborline/fishmarket-service/internal/domain"
)

// ProductRepository handles persistence for stock items.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, accountID, id string) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Product, error)
	List(ctx context.Context, accountID string, limit, offset int) ([]domain.Product, error)
	// AdjustStock atomically changes stock by delta and returns the new
	// quantity. A negative delta that would take stock below zero fails with
	// pgx.ErrNoRows so callers can report insufficient stock.
	AdjustStock(ctx context.Context, accountID, id string, delta float64) (float64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates the repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (account_id, name, unit, unit_price, stock_quantity, low_stock_level)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		product.AccountID,
		product.Name,
		product.Unit,
		product.UnitPrice,
		product.StockQuantity,
		product.LowStockLevel,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products
        SET name=$1, unit=$2, unit_price=$3, stock_quantity=$4, low_stock_level=$5, updated_at=NOW()
        WHERE id=$6 AND account_id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Unit,
		product.UnitPrice,
		product.StockQuantity,
		product.LowStockLevel,
		product.ID,
		product.AccountID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, accountID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1 AND account_id=$2`, id, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, accountID, id string) (*domain.Product, error) {
	const query = `
        SELECT id, account_id, name, unit, unit_price, stock_quantity, low_stock_level, created_at, updated_at
        FROM products WHERE id=$1 AND account_id=$2`

	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id, accountID).Scan(
		&product.ID,
		&product.AccountID,
		&product.Name,
		&product.Unit,
		&product.UnitPrice,
		&product.StockQuantity,
		&product.LowStockLevel,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, accountID string, limit, offset int) ([]domain.Product, error) {
	query := `
        SELECT id, account_id, name, unit, unit_price, stock_quantity, low_stock_level, created_at, updated_at
        FROM products WHERE account_id=$1
        ORDER BY name ASC`
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.AccountID,
			&product.Name,
			&product.Unit,
			&product.UnitPrice,
			&product.StockQuantity,
			&product.LowStockLevel,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

func (r *productRepository) AdjustStock(ctx context.Context, accountID, id string, delta float64) (float64, error) {
	const query = `
        UPDATE products
        SET stock_quantity = stock_quantity + $1, updated_at=NOW()
        WHERE id=$2 AND account_id=$3 AND stock_quantity + $1 >= 0
        RETURNING stock_quantity`

	var quantity float64
	if err := r.pool.QueryRow(ctx, query, delta, id, accountID).Scan(&quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}
