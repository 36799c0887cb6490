package domain

import "time"

// Worker models a delegated account operating under a business owner.
type Worker struct {
	ID           string
	AccountID    string
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorkerPermission is one capability grant row for a worker.
type WorkerPermission struct {
	WorkerID   string
	Capability string
	Granted    bool
}
