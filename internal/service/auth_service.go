package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/config"
	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/repository"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// TokenPair bundles a freshly minted access/refresh token set.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates registration, login, and token renewal flows.
type AuthService struct {
	accounts    repository.AccountRepository
	workers     repository.WorkerRepository
	revocations repository.TokenRevocationRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
}

// AuthDependencies encapsulates store requirements for the auth service.
type AuthDependencies struct {
	AccountRepo    repository.AccountRepository
	WorkerRepo     repository.WorkerRepository
	RevocationRepo repository.TokenRevocationRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:    deps.AccountRepo,
		workers:     deps.WorkerRepo,
		revocations: deps.RevocationRepo,
		tokenMgr:    auth.NewTokenManager(cfg.Auth),
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// RegisterOwner creates a new business-owner account and logs it in.
func (s *AuthService) RegisterOwner(ctx context.Context, businessName, ownerName, email, password string) (*domain.Account, *TokenPair, error) {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, nil, errors.New("email already registered")
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		BusinessName: businessName,
		OwnerName:    ownerName,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(auth.NewAdminClaims(account))
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// LoginOwner authenticates a business owner.
func (s *AuthService) LoginOwner(ctx context.Context, email, password string) (*domain.Account, *TokenPair, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, errors.New("invalid credentials")
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	pair, err := s.issuePair(auth.NewAdminClaims(account))
	if err != nil {
		return nil, nil, err
	}
	return account, pair, nil
}

// LoginWorker authenticates a worker and returns a worker-role token pair.
func (s *AuthService) LoginWorker(ctx context.Context, email, password string) (*domain.Worker, *TokenPair, error) {
	worker, err := s.workers.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, errors.New("invalid credentials")
		}
		return nil, nil, err
	}
	if !worker.Active {
		return nil, nil, errors.New("worker inactive")
	}
	if err := auth.ComparePassword(worker.PasswordHash, password); err != nil {
		return nil, nil, errors.New("invalid credentials")
	}

	account, err := s.accounts.GetByID(ctx, worker.AccountID)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(auth.NewWorkerClaims(account, worker))
	if err != nil {
		return nil, nil, err
	}
	return worker, pair, nil
}

// Refresh verifies a refresh token and mints a new access token from its
// embedded identity fields. No store lookup is performed: the account is
// re-resolved on the next authenticated request.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewInvalidRefreshToken()
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", time.Time{}, apperrors.NewStoreUnavailable(err)
	}
	if revoked {
		return "", time.Time{}, apperrors.NewInvalidRefreshToken()
	}

	next := *claims
	return s.tokenMgr.IssueAccessToken(next)
}

// Logout revokes the presented refresh token for its remaining lifetime.
// The paired access token stays valid until expiry.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokenMgr.VerifyRefreshToken(refreshToken)
	if err != nil {
		return apperrors.NewInvalidRefreshToken()
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

// ChangePassword verifies the current password for the resolved identity
// before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, identity *auth.Identity, currentPassword, newPassword string) error {
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	if worker, ok := identity.Worker(); ok {
		record, err := s.workers.GetByID(ctx, worker.WorkerID)
		if err != nil {
			return err
		}
		if err := auth.ComparePassword(record.PasswordHash, currentPassword); err != nil {
			return errors.New("invalid credentials")
		}
		record.PasswordHash = hash
		return s.workers.Update(ctx, record)
	}

	account, err := s.accounts.GetByID(ctx, identity.AccountID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		return errors.New("invalid credentials")
	}
	account.PasswordHash = hash
	return s.accounts.Update(ctx, account)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issuePair(claims auth.Claims) (*TokenPair, error) {
	accessToken, accessExp, err := s.tokenMgr.IssueAccessToken(claims)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExp, err := s.tokenMgr.IssueRefreshToken(claims)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}
