package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborline/fishmarket-service/internal/domain"
)

// WorkerRepository handles persistence for delegated worker accounts.
type WorkerRepository interface {
	Create(ctx context.Context, worker *domain.Worker) error
	Update(ctx context.Context, worker *domain.Worker) error
	Delete(ctx context.Context, accountID, id string) error
	GetByID(ctx context.Context, id string) (*domain.Worker, error)
	GetByEmail(ctx context.Context, email string) (*domain.Worker, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.Worker, error)
}

type workerRepository struct {
	pool *pgxpool.Pool
}

// NewWorkerRepository instantiates the repository.
func NewWorkerRepository(pool *pgxpool.Pool) WorkerRepository {
	return &workerRepository{pool: pool}
}

func (r *workerRepository) Create(ctx context.Context, worker *domain.Worker) error {
	const query = `
        INSERT INTO workers (account_id, name, email, password_hash, active_flag)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		worker.AccountID,
		worker.Name,
		worker.Email,
		worker.PasswordHash,
		worker.Active,
	).Scan(&worker.ID, &worker.CreatedAt, &worker.UpdatedAt)
}

func (r *workerRepository) Update(ctx context.Context, worker *domain.Worker) error {
	const query = `
        UPDATE workers
        SET name=$1, email=$2, password_hash=$3, active_flag=$4, updated_at=NOW()
        WHERE id=$5 AND account_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		worker.Name,
		worker.Email,
		worker.PasswordHash,
		worker.Active,
		worker.ID,
		worker.AccountID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workerRepository) Delete(ctx context.Context, accountID, id string) error {
	const query = `DELETE FROM workers WHERE id=$1 AND account_id=$2`

	cmd, err := r.pool.Exec(ctx, query, id, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	const query = `
        SELECT id, account_id, name, email, password_hash, active_flag, created_at, updated_at
        FROM workers WHERE id=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *workerRepository) GetByEmail(ctx context.Context, email string) (*domain.Worker, error) {
	const query = `
        SELECT id, account_id, name, email, password_hash, active_flag, created_at, updated_at
        FROM workers WHERE email=$1`

	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *workerRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Worker, error) {
	const query = `
        SELECT id, account_id, name, email, password_hash, active_flag, created_at, updated_at
        FROM workers WHERE account_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Worker
	for rows.Next() {
		var worker domain.Worker
		if err := rows.Scan(
			&worker.ID,
			&worker.AccountID,
			&worker.Name,
			&worker.Email,
			&worker.PasswordHash,
			&worker.Active,
			&worker.CreatedAt,
			&worker.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, worker)
	}
	return result, rows.Err()
}

func (r *workerRepository) scanOne(row pgx.Row) (*domain.Worker, error) {
	var worker domain.Worker
	if err := row.Scan(
		&worker.ID,
		&worker.AccountID,
		&worker.Name,
		&worker.Email,
		&worker.PasswordHash,
		&worker.Active,
		&worker.CreatedAt,
		&worker.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &worker, nil
}
