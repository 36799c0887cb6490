package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/harborline/fishmarket-service/internal/config"
	"github.com/harborline/fishmarket-service/internal/domain"
)

// Sentinel verification failures. Expired is distinct from invalid so callers
// can tell "log in again" apart from a malformed or tampered token.
var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the signed JWT payload shared by access and refresh tokens.
// Invariant: Role worker implies WorkerID is set, admin implies it is absent.
type Claims struct {
	AccountID    string      `json:"account_id"`
	Email        string      `json:"email"`
	BusinessName string      `json:"business_name"`
	OwnerName    string      `json:"owner_name"`
	Role         domain.Role `json:"role"`
	WorkerID     *string     `json:"worker_id,omitempty"`
	jwt.RegisteredClaims
}

// NewAdminClaims builds the claim set for a business owner.
func NewAdminClaims(account *domain.Account) Claims {
	return Claims{
		AccountID:    account.ID,
		Email:        account.Email,
		BusinessName: account.BusinessName,
		OwnerName:    account.OwnerName,
		Role:         domain.RoleAdmin,
	}
}

// NewWorkerClaims builds the claim set for a worker operating under account.
func NewWorkerClaims(account *domain.Account, worker *domain.Worker) Claims {
	workerID := worker.ID
	return Claims{
		AccountID:    account.ID,
		Email:        worker.Email,
		BusinessName: account.BusinessName,
		OwnerName:    account.OwnerName,
		Role:         domain.RoleWorker,
		WorkerID:     &workerID,
	}
}

// TokenManager issues and verifies the two token kinds. Access and refresh
// tokens are signed with independent secrets so one leaked secret cannot be
// used to mint the other kind.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager builds a manager from validated auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	accessTTL := cfg.AccessTokenTTL
	if accessTTL == 0 {
		accessTTL = 24 * time.Hour
	}
	refreshTTL := cfg.RefreshTokenTTL
	if refreshTTL == 0 {
		refreshTTL = 14 * 24 * time.Hour
	}
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived access token for the claim set.
func (tm *TokenManager) IssueAccessToken(claims Claims) (string, time.Time, error) {
	return tm.issue(claims, tm.accessSecret, tm.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the claim set.
func (tm *TokenManager) IssueRefreshToken(claims Claims) (string, time.Time, error) {
	return tm.issue(claims, tm.refreshSecret, tm.refreshTTL)
}

// VerifyAccessToken checks signature and expiry against the access secret.
func (tm *TokenManager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	return verify(tokenStr, tm.accessSecret)
}

// VerifyRefreshToken checks signature and expiry against the refresh secret.
func (tm *TokenManager) VerifyRefreshToken(tokenStr string) (*Claims, error) {
	return verify(tokenStr, tm.refreshSecret)
}

func (tm *TokenManager) issue(claims Claims, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.AccountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Role == domain.RoleWorker && claims.WorkerID == nil {
		return nil, ErrTokenInvalid
	}
	if claims.Role == domain.RoleAdmin && claims.WorkerID != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
