package domain

import "time"

// Role distinguishes business-owner tokens from delegated worker tokens.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// Account is the domain model for a business owner. Every account owns
// exactly one business; workers belong to an account.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	BusinessName string
	OwnerName    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
