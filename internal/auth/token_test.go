package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/harborline/fishmarket-service/internal/config"
	"github.com/harborline/fishmarket-service/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:  "access-secret-0123456789-0123456789",
		RefreshTokenSecret: "refresh-secret-0123456789-0123456789",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    24 * time.Hour,
		BcryptCost:         4,
	}
}

func testAccount() *domain.Account {
	return &domain.Account{
		ID:           "acc-1",
		Email:        "owner@fishmarket.test",
		BusinessName: "Blue Harbor Fish",
		OwnerName:    "Ama Mensah",
	}
}

func testWorker() *domain.Worker {
	return &domain.Worker{
		ID:        "wrk-1",
		AccountID: "acc-1",
		Name:      "Kofi",
		Email:     "kofi@fishmarket.test",
		Active:    true,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token, expiresAt, err := tm.IssueAccessToken(NewAdminClaims(testAccount()))
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiry %v not in the future", expiresAt)
	}

	claims, err := tm.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.AccountID != "acc-1" {
		t.Errorf("AccountID = %q, want acc-1", claims.AccountID)
	}
	if claims.Email != "owner@fishmarket.test" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.BusinessName != "Blue Harbor Fish" {
		t.Errorf("BusinessName = %q", claims.BusinessName)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
	if claims.WorkerID != nil {
		t.Errorf("WorkerID = %v, want nil for admin", *claims.WorkerID)
	}
}

func TestWorkerClaimsRoundTrip(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	token, _, err := tm.IssueAccessToken(NewWorkerClaims(testAccount(), testWorker()))
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	claims, err := tm.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.Role != domain.RoleWorker {
		t.Errorf("Role = %q, want worker", claims.Role)
	}
	if claims.WorkerID == nil || *claims.WorkerID != "wrk-1" {
		t.Errorf("WorkerID = %v, want wrk-1", claims.WorkerID)
	}
	if claims.Email != "kofi@fishmarket.test" {
		t.Errorf("Email = %q, want worker email", claims.Email)
	}
}

func TestExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTokenTTL = -time.Minute
	tm := NewTokenManager(cfg)

	token, _, err := tm.IssueAccessToken(NewAdminClaims(testAccount()))
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	_, err = tm.VerifyAccessToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestSecretIsolation(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	refreshToken, _, err := tm.IssueRefreshToken(NewAdminClaims(testAccount()))
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}
	if _, err := tm.VerifyAccessToken(refreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("access verify of refresh token: err = %v, want ErrTokenInvalid", err)
	}

	accessToken, _, err := tm.IssueAccessToken(NewAdminClaims(testAccount()))
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := tm.VerifyRefreshToken(accessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("refresh verify of access token: err = %v, want ErrTokenInvalid", err)
	}
}

func TestMalformedToken(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := tm.VerifyAccessToken(token); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("VerifyAccessToken(%q): err = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestRoleShapeInvariant(t *testing.T) {
	tm := NewTokenManager(testAuthConfig())

	// Worker role without a worker id must never verify.
	broken := NewAdminClaims(testAccount())
	broken.Role = domain.RoleWorker
	token, _, err := tm.IssueAccessToken(broken)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := tm.VerifyAccessToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("worker claims without worker id: err = %v, want ErrTokenInvalid", err)
	}

	// Admin role carrying a worker id is equally malformed.
	workerID := "wrk-1"
	broken = NewAdminClaims(testAccount())
	broken.WorkerID = &workerID
	token, _, err = tm.IssueAccessToken(broken)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if _, err := tm.VerifyAccessToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("admin claims with worker id: err = %v, want ErrTokenInvalid", err)
	}
}
