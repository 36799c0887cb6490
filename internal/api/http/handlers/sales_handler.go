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

// SalesHandler exposes sale recording and listing endpoints.
type SalesHandler struct {
	trading *service.TradingService
}

// NewSalesHandler constructs handler.
func NewSalesHandler(trading *service.TradingService) *SalesHandler {
	return &SalesHandler{trading: trading}
}

// Create handles POST /api/sales.
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	var req dto.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProductID == "" {
		return fiber.NewError(http.StatusBadRequest, "product_id required")
	}
	if req.Quantity <= 0 {
		return fiber.NewError(http.StatusBadRequest, "quantity must be positive")
	}

	paymentStatus := domain.PaymentStatus(req.PaymentStatus)
	switch paymentStatus {
	case domain.PaymentStatusPaid, domain.PaymentStatusPending, "":
	default:
		return fiber.NewError(http.StatusBadRequest, "payment_status must be PAID or PENDING")
	}

	sale, err := h.trading.RecordSale(c.Context(), identity, service.SaleInput{
		ProductID:     req.ProductID,
		ContactID:     req.ContactID,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		PaymentStatus: paymentStatus,
		SoldAt:        req.SoldAt,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sale})
}

// List handles GET /api/sales.
func (h *SalesHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	filter := repository.SaleFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if productID := c.Query("product_id"); productID != "" {
		filter.ProductID = &productID
	}
	if contactID := c.Query("contact_id"); contactID != "" {
		filter.ContactID = &contactID
	}
	if status := c.Query("payment_status"); status != "" {
		paymentStatus := domain.PaymentStatus(status)
		filter.PaymentStatus = &paymentStatus
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid from timestamp")
		}
		filter.SoldFrom = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid to timestamp")
		}
		filter.SoldTo = &t
	}

	sales, err := h.trading.ListSales(c.Context(), identity.AccountID, filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	return c.JSON(fiber.Map{"data": sales})
}

// Get handles GET /api/sales/:id.
func (h *SalesHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	sale, err := h.trading.GetSale(c.Context(), identity.AccountID, c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("sale", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": sale})
}
