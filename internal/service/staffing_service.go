package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/events"
	"github.com/harborline/fishmarket-service/internal/repository"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// StaffingService manages worker accounts and their capability grants.
type StaffingService struct {
	workers     repository.WorkerRepository
	permissions repository.PermissionRepository
	dispatcher  events.Dispatcher
	bcryptCost  int
}

// StaffingDependencies bundles store requirements for the staffing service.
type StaffingDependencies struct {
	WorkerRepo     repository.WorkerRepository
	PermissionRepo repository.PermissionRepository
	Dispatcher     events.Dispatcher
}

// WorkerCreateInput describes worker creation payload.
type WorkerCreateInput struct {
	Name         string
	Email        string
	Password     string
	Capabilities []string
}

// WorkerUpdateInput describes worker update payload.
type WorkerUpdateInput struct {
	Name   string
	Email  string
	Active bool
}

// NewStaffingService constructs the service.
func NewStaffingService(bcryptCost int, deps StaffingDependencies) *StaffingService {
	return &StaffingService{
		workers:     deps.WorkerRepo,
		permissions: deps.PermissionRepo,
		dispatcher:  deps.Dispatcher,
		bcryptCost:  bcryptCost,
	}
}

// CreateWorker registers a worker under the account and stores the initial
// grant set.
func (s *StaffingService) CreateWorker(ctx context.Context, accountID string, input WorkerCreateInput) (*domain.Worker, error) {
	if _, err := s.workers.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already in use", nil)
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	if err := validateCapabilities(input.Capabilities); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	worker := &domain.Worker{
		AccountID:    accountID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, err
	}

	if len(input.Capabilities) > 0 {
		if err := s.permissions.Replace(ctx, worker.ID, input.Capabilities); err != nil {
			return nil, err
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventWorkerCreated,
			AccountID: accountID,
			Actor:     events.Actor{Role: domain.RoleAdmin, AccountID: accountID},
			Timestamp: time.Now(),
			Payload: events.WorkerCreatedPayload{
				WorkerID: worker.ID,
				Name:     worker.Name,
				Email:    worker.Email,
			},
		})
	}

	return worker, nil
}

// ListWorkers returns all workers for the account.
func (s *StaffingService) ListWorkers(ctx context.Context, accountID string) ([]domain.Worker, error) {
	return s.workers.ListByAccount(ctx, accountID)
}

// GetWorker loads one worker scoped to the account.
func (s *StaffingService) GetWorker(ctx context.Context, accountID, workerID string) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker.AccountID != accountID {
		return nil, pgx.ErrNoRows
	}
	return worker, nil
}

// UpdateWorker edits worker profile fields and the active flag.
func (s *StaffingService) UpdateWorker(ctx context.Context, accountID, workerID string, input WorkerUpdateInput) (*domain.Worker, error) {
	worker, err := s.GetWorker(ctx, accountID, workerID)
	if err != nil {
		return nil, err
	}
	worker.Name = input.Name
	worker.Email = input.Email
	worker.Active = input.Active
	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, err
	}
	return worker, nil
}

// DeleteWorker removes a worker and, via cascade, its permission rows.
func (s *StaffingService) DeleteWorker(ctx context.Context, accountID, workerID string) error {
	return s.workers.Delete(ctx, accountID, workerID)
}

// GetPermissions returns the worker's granted capabilities.
func (s *StaffingService) GetPermissions(ctx context.Context, accountID, workerID string) ([]string, error) {
	if _, err := s.GetWorker(ctx, accountID, workerID); err != nil {
		return nil, err
	}
	return s.permissions.ListGranted(ctx, workerID)
}

// SetPermissions replaces the worker's grant set. Takes effect on the
// worker's next request; in-flight requests keep their snapshot.
func (s *StaffingService) SetPermissions(ctx context.Context, accountID, workerID string, capabilities []string) error {
	if _, err := s.GetWorker(ctx, accountID, workerID); err != nil {
		return err
	}
	if err := validateCapabilities(capabilities); err != nil {
		return err
	}
	return s.permissions.Replace(ctx, workerID, capabilities)
}

func validateCapabilities(capabilities []string) error {
	for _, name := range capabilities {
		if !domain.ValidCapability(name) {
			return apperrors.NewValidationError("unknown capability", map[string]any{"capability": name})
		}
	}
	return nil
}
