package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PermissionRepository resolves and manages worker capability grants.
type PermissionRepository interface {
	// ListGranted returns the capability names flagged granted for the
	// worker. A worker with no rows has an empty set; that is not an error.
	ListGranted(ctx context.Context, workerID string) ([]string, error)
	// Replace swaps the worker's grant set for the given capability names.
	Replace(ctx context.Context, workerID string, granted []string) error
}

type permissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository instantiates the repository.
func NewPermissionRepository(pool *pgxpool.Pool) PermissionRepository {
	return &permissionRepository{pool: pool}
}

func (r *permissionRepository) ListGranted(ctx context.Context, workerID string) ([]string, error) {
	const query = `
        SELECT capability FROM worker_permissions
        WHERE worker_id=$1 AND granted=TRUE`

	rows, err := r.pool.Query(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var granted []string
	for rows.Next() {
		var capability string
		if err := rows.Scan(&capability); err != nil {
			return nil, err
		}
		granted = append(granted, capability)
	}
	return granted, rows.Err()
}

func (r *permissionRepository) Replace(ctx context.Context, workerID string, granted []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM worker_permissions WHERE worker_id=$1`, workerID); err != nil {
		return err
	}

	const insert = `
        INSERT INTO worker_permissions (worker_id, capability, granted)
        VALUES ($1, $2, TRUE)`
	for _, capability := range granted {
		if _, err := tx.Exec(ctx, insert, workerID, capability); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
