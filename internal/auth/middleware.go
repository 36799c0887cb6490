package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/repository"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware validates bearer tokens and resolves the caller Identity.
type AuthMiddleware struct {
	tokens      *TokenManager
	accounts    repository.AccountRepository
	workers     repository.WorkerRepository
	permissions repository.PermissionRepository
}

// NewAuthMiddleware constructs middleware with explicit store dependencies.
func NewAuthMiddleware(tokens *TokenManager, accounts repository.AccountRepository, workers repository.WorkerRepository, permissions repository.PermissionRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:      tokens,
		accounts:    accounts,
		workers:     workers,
		permissions: permissions,
	}
}

// Handle enforces authentication for protected routes. On success the
// resolved Identity is attached to the request locals; any failure aborts the
// request before route logic runs.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// Optional resolves an Identity when credentials are present and valid, and
// otherwise lets the request proceed anonymously. Rejection reasons are never
// surfaced; only a store outage still aborts, since an outage must not be
// mistaken for an anonymous caller.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	identity, err := m.resolve(c)
	if err != nil {
		if apperrors.HasCode(err, "STORE_UNAVAILABLE") {
			return err
		}
		return c.Next()
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*Identity, error) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return nil, apperrors.NewAuthRequired()
	}

	claims, err := m.tokens.VerifyAccessToken(tokenStr)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, apperrors.NewTokenExpired()
		}
		return nil, apperrors.NewTokenInvalid()
	}

	account, err := m.accounts.GetByID(c.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Deleted account: same rejection as a bad token so callers
			// cannot probe account existence.
			return nil, apperrors.NewTokenInvalid()
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	if claims.Role != domain.RoleWorker {
		return NewAdminIdentity(account), nil
	}

	if claims.WorkerID == nil {
		return nil, apperrors.NewTokenInvalid()
	}
	worker, err := m.workers.GetByID(c.Context(), *claims.WorkerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewTokenInvalid()
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}
	if !worker.Active {
		return nil, apperrors.NewTokenInvalid()
	}

	granted, err := m.permissions.ListGranted(c.Context(), worker.ID)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	return NewWorkerIdentity(account, worker, granted), nil
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the "token" cookie.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies("token")
}

// IdentityFromContext retrieves the authenticated caller, if any.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
