package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/harborline/fishmarket-service/internal/api/dto"
	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/domain"
	"github.com/harborline/fishmarket-service/internal/repository"
	"github.com/harborline/fishmarket-service/internal/service"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// ExpensesHandler exposes expense ledger endpoints.
type ExpensesHandler struct {
	ledger *service.LedgerService
}

// NewExpensesHandler constructs handler.
func NewExpensesHandler(ledger *service.LedgerService) *ExpensesHandler {
	return &ExpensesHandler{ledger: ledger}
}

// Create handles POST /api/expenses.
func (h *ExpensesHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	input, err := parseExpenseRequest(c)
	if err != nil {
		return err
	}

	expense, err := h.ledger.CreateExpense(c.Context(), identity.AccountID, *input)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": expense})
}

// List handles GET /api/expenses.
func (h *ExpensesHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	filter := repository.ExpenseFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid from timestamp")
		}
		filter.SpentFrom = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid to timestamp")
		}
		filter.SpentTo = &t
	}

	expenses, err := h.ledger.ListExpenses(c.Context(), identity.AccountID, filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return c.JSON(fiber.Map{"data": expenses})
}

// Get handles GET /api/expenses/:id.
func (h *ExpensesHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	expense, err := h.ledger.GetExpense(c.Context(), identity.AccountID, c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("expense", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": expense})
}

// Update handles PUT /api/expenses/:id.
func (h *ExpensesHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	input, err := parseExpenseRequest(c)
	if err != nil {
		return err
	}

	expense, err := h.ledger.UpdateExpense(c.Context(), identity.AccountID, c.Params("id"), *input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("expense", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": expense})
}

// Delete handles DELETE /api/expenses/:id.
func (h *ExpensesHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	if err := h.ledger.DeleteExpense(c.Context(), identity.AccountID, c.Params("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("expense", nil)
		}
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseExpenseRequest(c *fiber.Ctx) (*service.ExpenseInput, error) {
	var req dto.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Description == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "description required")
	}

	return &service.ExpenseInput{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		SpentAt:     req.SpentAt,
	}, nil
}
