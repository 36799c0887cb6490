package auth

import (
	"testing"

	"github.com/harborline/fishmarket-service/internal/domain"
)

func TestAdminHoldsEveryCapability(t *testing.T) {
	identity := NewAdminIdentity(testAccount())

	if !identity.IsAdmin() {
		t.Fatal("IsAdmin() = false")
	}
	if _, ok := identity.Worker(); ok {
		t.Fatal("Worker() should not resolve for admin")
	}
	for _, name := range append(domain.AllCapabilities, "made_up_capability") {
		if !identity.HasCapability(name) {
			t.Errorf("admin denied %q", name)
		}
	}
}

func TestWorkerCapabilityMembership(t *testing.T) {
	identity := NewWorkerIdentity(testAccount(), testWorker(), []string{domain.CapViewSales, domain.CapViewProducts})

	if identity.IsAdmin() {
		t.Fatal("IsAdmin() = true for worker")
	}
	worker, ok := identity.Worker()
	if !ok {
		t.Fatal("Worker() did not resolve")
	}
	if worker.WorkerID != "wrk-1" {
		t.Errorf("WorkerID = %q", worker.WorkerID)
	}

	if !identity.HasCapability(domain.CapViewSales) {
		t.Error("granted capability denied")
	}
	if identity.HasCapability(domain.CapManageSales) {
		t.Error("ungranted capability allowed")
	}
}

func TestEmptyPermissionSetDeniesEverything(t *testing.T) {
	identity := NewWorkerIdentity(testAccount(), testWorker(), nil)

	for _, name := range domain.AllCapabilities {
		if identity.HasCapability(name) {
			t.Errorf("empty set allowed %q", name)
		}
	}
}

func TestWorkerWithoutContextHoldsNothing(t *testing.T) {
	// Should not happen given the claim invariant, but the gate must treat
	// it as zero capabilities rather than panic or act as admin.
	identity := &Identity{AccountID: "acc-1", role: domain.RoleWorker}

	if identity.IsAdmin() {
		t.Fatal("context-less worker treated as admin")
	}
	if _, ok := identity.Worker(); ok {
		t.Fatal("Worker() resolved without context")
	}
	if identity.HasCapability(domain.CapViewSales) {
		t.Error("context-less worker granted a capability")
	}
}
