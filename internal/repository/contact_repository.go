package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborline/fishmarket-service/internal/domain"
)

// ContactRepository handles persistence for customers and suppliers.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, accountID, id string) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Contact, error)
	List(ctx context.Context, accountID string, filter ContactFilter) ([]domain.Contact, error)
}

// ContactFilter defines query params for contact listing.
type ContactFilter struct {
	Kind   *domain.ContactKind
	Search *string
	Limit  int
	Offset int
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates the repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (account_id, name, phone, email, kind, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		contact.AccountID,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Kind,
		contact.Notes,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	const query = `
        UPDATE contacts SET name=$1, phone=$2, email=$3, kind=$4, notes=$5, updated_at=NOW()
        WHERE id=$6 AND account_id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Kind,
		contact.Notes,
		contact.ID,
		contact.AccountID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, accountID, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id=$1 AND account_id=$2`, id, accountID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, accountID, id string) (*domain.Contact, error) {
	const query = `
        SELECT id, account_id, name, phone, email, kind, notes, created_at, updated_at
        FROM contacts WHERE id=$1 AND account_id=$2`

	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, id, accountID).Scan(
		&contact.ID,
		&contact.AccountID,
		&contact.Name,
		&contact.Phone,
		&contact.Email,
		&contact.Kind,
		&contact.Notes,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) List(ctx context.Context, accountID string, filter ContactFilter) ([]domain.Contact, error) {
	query := `
        SELECT id, account_id, name, phone, email, kind, notes, created_at, updated_at
        FROM contacts`
	args := []any{accountID}
	clauses := []string{"account_id=$1"}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		clauses = append(clauses, fmt.Sprintf("kind=$%d", len(args)))
	}
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	query += " WHERE " + strings.Join(clauses, " AND ")

	query += " ORDER BY created_at DESC"
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

	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.AccountID,
			&contact.Name,
			&contact.Phone,
			&contact.Email,
			&contact.Kind,
			&contact.Notes,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}
