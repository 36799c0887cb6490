package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/config"
	"github.com/harborline/fishmarket-service/internal/domain"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

type memAccountRepo struct {
	accounts map[string]*domain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*domain.Account{}}
}

func (r *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = fmt.Sprintf("acc-%d", len(r.accounts)+1)
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memWorkerRepo struct {
	workers map[string]*domain.Worker
}

func newMemWorkerRepo() *memWorkerRepo {
	return &memWorkerRepo{workers: map[string]*domain.Worker{}}
}

func (r *memWorkerRepo) Create(_ context.Context, worker *domain.Worker) error {
	if worker.ID == "" {
		worker.ID = fmt.Sprintf("wrk-%d", len(r.workers)+1)
	}
	r.workers[worker.ID] = worker
	return nil
}

func (r *memWorkerRepo) Update(_ context.Context, worker *domain.Worker) error {
	r.workers[worker.ID] = worker
	return nil
}

func (r *memWorkerRepo) Delete(_ context.Context, _, id string) error {
	delete(r.workers, id)
	return nil
}

func (r *memWorkerRepo) GetByID(_ context.Context, id string) (*domain.Worker, error) {
	worker, ok := r.workers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return worker, nil
}

func (r *memWorkerRepo) GetByEmail(_ context.Context, email string) (*domain.Worker, error) {
	for _, worker := range r.workers {
		if worker.Email == email {
			return worker, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memWorkerRepo) ListByAccount(_ context.Context, accountID string) ([]domain.Worker, error) {
	var out []domain.Worker
	for _, worker := range r.workers {
		if worker.AccountID == accountID {
			out = append(out, *worker)
		}
	}
	return out, nil
}

type memRevocationRepo struct {
	revoked  map[string]time.Time
	failWith error
}

func newMemRevocationRepo() *memRevocationRepo {
	return &memRevocationRepo{revoked: map[string]time.Time{}}
}

func (r *memRevocationRepo) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *memRevocationRepo) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	_, ok := r.revoked[tokenID]
	return ok, nil
}

type authServiceFixture struct {
	svc         *AuthService
	accounts    *memAccountRepo
	workers     *memWorkerRepo
	revocations *memRevocationRepo
}

func newAuthServiceFixture() *authServiceFixture {
	f := &authServiceFixture{
		accounts:    newMemAccountRepo(),
		workers:     newMemWorkerRepo(),
		revocations: newMemRevocationRepo(),
	}
	cfg := config.Config{Auth: config.AuthConfig{
		AccessTokenSecret:  "access-secret-0123456789-0123456789",
		RefreshTokenSecret: "refresh-secret-0123456789-0123456789",
		AccessTokenTTL:     time.Hour,
		RefreshTokenTTL:    24 * time.Hour,
		BcryptCost:         4,
	}}
	f.svc = NewAuthService(cfg, AuthDependencies{
		AccountRepo:    f.accounts,
		WorkerRepo:     f.workers,
		RevocationRepo: f.revocations,
	})
	return f
}

func (f *authServiceFixture) registerOwner(t *testing.T) (*domain.Account, *TokenPair) {
	t.Helper()
	account, pair, err := f.svc.RegisterOwner(context.Background(), "Blue Harbor Fish", "Ama Mensah", "owner@fishmarket.test", "secret-pw")
	if err != nil {
		t.Fatalf("RegisterOwner: %v", err)
	}
	return account, pair
}

func TestRegisterOwnerIssuesWorkingPair(t *testing.T) {
	f := newAuthServiceFixture()
	account, pair := f.registerOwner(t)

	if account.ID == "" {
		t.Fatal("account not persisted with an id")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("incomplete token pair")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens are identical")
	}

	claims, err := f.svc.TokenManager().VerifyAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.AccountID != account.ID {
		t.Errorf("AccountID = %q, want %q", claims.AccountID, account.ID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestRegisterOwnerRejectsDuplicateEmail(t *testing.T) {
	f := newAuthServiceFixture()
	f.registerOwner(t)

	if _, _, err := f.svc.RegisterOwner(context.Background(), "Other", "Other", "owner@fishmarket.test", "pw"); err == nil {
		t.Fatal("duplicate email accepted")
	}
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	f := newAuthServiceFixture()
	account, pair := f.registerOwner(t)

	token, expiresAt, err := f.svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiry %v not in the future", expiresAt)
	}

	claims, err := f.svc.TokenManager().VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("refreshed token did not verify: %v", err)
	}
	if claims.AccountID != account.ID {
		t.Errorf("AccountID = %q, want %q", claims.AccountID, account.ID)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newAuthServiceFixture()
	_, pair := f.registerOwner(t)

	_, _, err := f.svc.Refresh(context.Background(), pair.AccessToken)
	if !apperrors.HasCode(err, "INVALID_REFRESH_TOKEN") {
		t.Errorf("err = %v, want INVALID_REFRESH_TOKEN", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	f := newAuthServiceFixture()

	_, _, err := f.svc.Refresh(context.Background(), "not-a-token")
	if !apperrors.HasCode(err, "INVALID_REFRESH_TOKEN") {
		t.Errorf("err = %v, want INVALID_REFRESH_TOKEN", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newAuthServiceFixture()
	_, pair := f.registerOwner(t)

	if err := f.svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, _, err := f.svc.Refresh(context.Background(), pair.RefreshToken)
	if !apperrors.HasCode(err, "INVALID_REFRESH_TOKEN") {
		t.Errorf("refresh after logout: err = %v, want INVALID_REFRESH_TOKEN", err)
	}
}

func TestRefreshSurfacesRevocationStoreOutage(t *testing.T) {
	f := newAuthServiceFixture()
	_, pair := f.registerOwner(t)
	f.revocations.failWith = errors.New("connection refused")

	_, _, err := f.svc.Refresh(context.Background(), pair.RefreshToken)
	if !apperrors.HasCode(err, "STORE_UNAVAILABLE") {
		t.Errorf("err = %v, want STORE_UNAVAILABLE", err)
	}
}

func TestLoginWorker(t *testing.T) {
	f := newAuthServiceFixture()
	account, _ := f.registerOwner(t)

	hash, err := auth.HashPassword("worker-pw", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	worker := &domain.Worker{
		AccountID:    account.ID,
		Name:         "Kofi",
		Email:        "kofi@fishmarket.test",
		PasswordHash: hash,
		Active:       true,
	}
	if err := f.workers.Create(context.Background(), worker); err != nil {
		t.Fatalf("seed worker: %v", err)
	}

	got, pair, err := f.svc.LoginWorker(context.Background(), "kofi@fishmarket.test", "worker-pw")
	if err != nil {
		t.Fatalf("LoginWorker: %v", err)
	}
	if got.ID != worker.ID {
		t.Errorf("worker ID = %q, want %q", got.ID, worker.ID)
	}

	claims, err := f.svc.TokenManager().VerifyAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.Role != domain.RoleWorker {
		t.Errorf("Role = %q, want worker", claims.Role)
	}
	if claims.WorkerID == nil || *claims.WorkerID != worker.ID {
		t.Errorf("WorkerID = %v, want %q", claims.WorkerID, worker.ID)
	}

	if _, _, err := f.svc.LoginWorker(context.Background(), "kofi@fishmarket.test", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}

	worker.Active = false
	if _, _, err := f.svc.LoginWorker(context.Background(), "kofi@fishmarket.test", "worker-pw"); err == nil {
		t.Error("inactive worker logged in")
	}
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	f := newAuthServiceFixture()
	account, _ := f.registerOwner(t)
	identity := auth.NewAdminIdentity(account)

	if err := f.svc.ChangePassword(context.Background(), identity, "wrong-pw", "new-pw"); err == nil {
		t.Fatal("password changed without valid current password")
	}
	if err := f.svc.ChangePassword(context.Background(), identity, "secret-pw", "new-pw"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, _, err := f.svc.LoginOwner(context.Background(), "owner@fishmarket.test", "new-pw"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}
