package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborline/fishmarket-service/internal/domain"
)

// ExpenseRepository handles persistence for business expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, accountID, id string) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Expense, error)
	List(ctx context.Context, accountID string, filter ExpenseFilter) ([]domain.Expense, error)
}

// ExpenseFilter defines query params for expense listing.
type ExpenseFilter struct {
	Category  *string
	SpentFrom *time.Time
	SpentTo   *time.Time
	Limit     int
	Offset    int
}

type expenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository instantiates the repository.
func NewExpenseRepository(pool *pgxpool.Pool) ExpenseRepository {
	return &expenseRepository{pool: pool}
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	const query = `
        INSERT INTO expenses (account_id, description, category, amount, spent_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		expense.AccountID,
		expense.Description,
		expense.Category,
		expense.Amount,
		expense.SpentAt,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	const query = `
        UPDATE expenses SET description=$1, category=$2, amount=$3, spent_at=$4, updated_at=NOW()
        WHERE id=$5 AND account_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		expense.Description,
		expense.Category,
		expense.Amount,
		expense.SpentAt,
		expense.ID,
		expense.AccountID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, accountID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id=$1 AND account_id=$2`, id, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *expenseRepository) GetByID(ctx context.Context, accountID, id string) (*domain.Expense, error) {
	const query = `
        SELECT id, account_id, description, category, amount, spent_at, created_at, updated_at
        FROM expenses WHERE id=$1 AND account_id=$2`

	var expense domain.Expense
	if err := r.pool.QueryRow(ctx, query, id, accountID).Scan(
		&expense.ID,
		&expense.AccountID,
		&expense.Description,
		&expense.Category,
		&expense.Amount,
		&expense.SpentAt,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) List(ctx context.Context, accountID string, filter ExpenseFilter) ([]domain.Expense, error) {
	query := `
        SELECT id, account_id, description, category, amount, spent_at, created_at, updated_at
        FROM expenses`
	args := []any{accountID}
	clauses := []string{"account_id=$1"}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.SpentFrom != nil {
		args = append(args, *filter.SpentFrom)
		clauses = append(clauses, fmt.Sprintf("spent_at >= $%d", len(args)))
	}
	if filter.SpentTo != nil {
		args = append(args, *filter.SpentTo)
		clauses = append(clauses, fmt.Sprintf("spent_at <= $%d", len(args)))
	}
	query += " WHERE " + strings.Join(clauses, " AND ")

	query += " ORDER BY spent_at DESC"
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

	var result []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.AccountID,
			&expense.Description,
			&expense.Category,
			&expense.Amount,
			&expense.SpentAt,
			&expense.CreatedAt,
			&expense.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, expense)
	}
	return result, rows.Err()
}
