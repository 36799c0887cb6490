package auth

import "github.com/harborline/fishmarket-service/internal/domain"

// WorkerContext carries the worker-specific half of an Identity, including
// the permission snapshot taken when the request was authenticated.
type WorkerContext struct {
	WorkerID    string
	Name        string
	Email       string
	Permissions map[string]struct{}
}

// Has reports whether the snapshot contains the named capability.
func (w *WorkerContext) Has(name string) bool {
	if w == nil {
		return false
	}
	_, ok := w.Permissions[name]
	return ok
}

// Identity is the resolved, request-scoped caller. The role and worker
// context are unexported so permission data can only be reached through
// Worker(), which forces callers to handle the admin variant.
type Identity struct {
	AccountID    string
	Email        string
	BusinessName string
	OwnerName    string
	role         domain.Role
	worker       *WorkerContext
}

// NewAdminIdentity builds the owner variant.
func NewAdminIdentity(account *domain.Account) *Identity {
	return &Identity{
		AccountID:    account.ID,
		Email:        account.Email,
		BusinessName: account.BusinessName,
		OwnerName:    account.OwnerName,
		role:         domain.RoleAdmin,
	}
}

// NewWorkerIdentity builds the worker variant with its permission snapshot.
func NewWorkerIdentity(account *domain.Account, worker *domain.Worker, granted []string) *Identity {
	perms := make(map[string]struct{}, len(granted))
	for _, name := range granted {
		perms[name] = struct{}{}
	}
	return &Identity{
		AccountID:    account.ID,
		Email:        worker.Email,
		BusinessName: account.BusinessName,
		OwnerName:    account.OwnerName,
		role:         domain.RoleWorker,
		worker: &WorkerContext{
			WorkerID:    worker.ID,
			Name:        worker.Name,
			Email:       worker.Email,
			Permissions: perms,
		},
	}
}

// Role returns the role tag.
func (id *Identity) Role() domain.Role {
	return id.role
}

// IsAdmin reports whether the identity is the business owner.
func (id *Identity) IsAdmin() bool {
	return id.role == domain.RoleAdmin
}

// Worker returns the worker context when the identity is a worker.
func (id *Identity) Worker() (*WorkerContext, bool) {
	if id.role != domain.RoleWorker || id.worker == nil {
		return nil, false
	}
	return id.worker, true
}

// HasCapability reports whether the identity may perform the named
// capability. Admin holds every capability; a worker without a resolved
// context holds none.
func (id *Identity) HasCapability(name string) bool {
	if id.IsAdmin() {
		return true
	}
	worker, ok := id.Worker()
	if !ok {
		return false
	}
	return worker.Has(name)
}
