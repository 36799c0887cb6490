package dto

import "time"

// RegisterRequest payload for new business owners.
type RegisterRequest struct {
	BusinessName string `json:"business_name"`
	OwnerName    string `json:"owner_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

// LoginRequest payload for owner and worker login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload for token renewal. Refresh tokens travel only in
// request bodies, never in headers or cookies.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest payload for refresh-token revocation.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// TokenPairResponse standard response carrying both tokens.
type TokenPairResponse struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// AccessTokenResponse response for the refresh endpoint.
type AccessTokenResponse struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

// IdentityResponse echoes the resolved request identity.
type IdentityResponse struct {
	AccountID    string          `json:"account_id"`
	Email        string          `json:"email"`
	BusinessName string          `json:"business_name"`
	OwnerName    string          `json:"owner_name"`
	Role         string          `json:"role"`
	Worker       *WorkerIdentity `json:"worker,omitempty"`
}

// WorkerIdentity is the worker half of an IdentityResponse.
type WorkerIdentity struct {
	WorkerID    string   `json:"worker_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}
