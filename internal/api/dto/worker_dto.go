package dto

import "time"

// WorkerCreateRequest payload for creating a worker.
type WorkerCreateRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Capabilities []string `json:"capabilities"`
}

// WorkerUpdateRequest payload for editing a worker.
type WorkerUpdateRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// WorkerPermissionsRequest payload replacing a worker's grant set.
type WorkerPermissionsRequest struct {
	Capabilities []string `json:"capabilities"`
}

// WorkerResponse representation of a worker.
type WorkerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
