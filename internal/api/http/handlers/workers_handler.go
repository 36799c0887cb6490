package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/api/dto"
	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/service"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// WorkersHandler exposes the admin-only worker management surface.
type WorkersHandler struct {
	staffing *service.StaffingService
}

// NewWorkersHandler constructs handler.
func NewWorkersHandler(staffing *service.StaffingService) *WorkersHandler {
	return &WorkersHandler{staffing: staffing}
}

// Create handles POST /api/workers.
func (h *WorkersHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	var req dto.WorkerCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	worker, err := h.staffing.CreateWorker(c.Context(), identity.AccountID, service.WorkerCreateInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Capabilities: req.Capabilities,
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": workerResponse(worker)})
}

// List handles GET /api/workers.
func (h *WorkersHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	workers, err := h.staffing.ListWorkers(c.Context(), identity.AccountID)
	if err != nil {
		return apperrors.MapError(err)
	}

	items := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		items = append(items, workerResponse(&workers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /api/workers/:id.
func (h *WorkersHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	worker, err := h.staffing.GetWorker(c.Context(), identity.AccountID, c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("worker", nil)
		}
		return apperrors.MapError(err)
	}

	permissions, err := h.staffing.GetPermissions(c.Context(), identity.AccountID, worker.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if permissions == nil {
		permissions = []string{}
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"worker":      workerResponse(worker),
		"permissions": permissions,
	}})
}

// Update handles PUT /api/workers/:id.
func (h *WorkersHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	var req dto.WorkerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "name and email required")
	}

	worker, err := h.staffing.UpdateWorker(c.Context(), identity.AccountID, c.Params("id"), service.WorkerUpdateInput{
		Name:   req.Name,
		Email:  req.Email,
		Active: req.Active,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("worker", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{"data": workerResponse(worker)})
}

// Delete handles DELETE /api/workers/:id.
func (h *WorkersHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	if err := h.staffing.DeleteWorker(c.Context(), identity.AccountID, c.Params("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("worker", nil)
		}
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// SetPermissions handles PUT /api/workers/:id/permissions.
func (h *WorkersHandler) SetPermissions(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	var req dto.WorkerPermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.staffing.SetPermissions(c.Context(), identity.AccountID, c.Params("id"), req.Capabilities); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("worker", nil)
		}
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Capabilities handles GET /api/workers/capabilities.
func (h *WorkersHandler) Capabilities(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": domain.AllCapabilities})
}

func workerResponse(worker *domain.Worker) dto.WorkerResponse {
	return dto.WorkerResponse{
		ID:        worker.ID,
		Name:      worker.Name,
		Email:     worker.Email,
		Active:    worker.Active,
		CreatedAt: worker.CreatedAt,
	}
}
