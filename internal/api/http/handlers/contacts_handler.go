package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/api/dto"
	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/repository"
	"github.com/harborline/fishmarket-service/internal/service"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// ContactsHandler exposes customer/supplier directory endpoints.
type ContactsHandler struct {
	directory *service.DirectoryService
}

// NewContactsHandler constructs handler.
func NewContactsHandler(directory *service.DirectoryService) *ContactsHandler {
	return &ContactsHandler{directory: directory}
}

// Create handles POST /api/contacts.
func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	input, err := parseContactRequest(c)
	if err != nil {
		return err
	}

	contact, err := h.directory.CreateContact(c.Context(), identity.AccountID, *input)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": contact})
}

// List handles GET /api/contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	filter := repository.ContactFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if kind := c.Query("kind"); kind != "" {
		contactKind := domain.ContactKind(kind)
		filter.Kind = &contactKind
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	contacts, err := h.directory.ListContacts(c.Context(), identity.AccountID, filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return c.JSON(fiber.Map{"data": contacts})
}

// Get handles GET /api/contacts/:id.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	contact, err := h.directory.GetContact(c.Context(), identity.AccountID, c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("contact", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": contact})
}

// Update handles PUT /api/contacts/:id.
func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	input, err := parseContactRequest(c)
	if err != nil {
		return err
	}

	contact, err := h.directory.UpdateContact(c.Context(), identity.AccountID, c.Params("id"), *input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("contact", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": contact})
}

// Delete handles DELETE /api/contacts/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	if err := h.directory.DeleteContact(c.Context(), identity.AccountID, c.Params("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("contact", nil)
		}
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseContactRequest(c *fiber.Ctx) (*service.ContactInput, error) {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "name required")
	}

	kind := domain.ContactKind(req.Kind)
	switch kind {
	case domain.ContactKindCustomer, domain.ContactKindSupplier:
	case "":
		kind = domain.ContactKindCustomer
	default:
		return nil, fiber.NewError(http.StatusBadRequest, "kind must be CUSTOMER or SUPPLIER")
	}

	return &service.ContactInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Kind:  kind,
		Notes: req.Notes,
	}, nil
}
