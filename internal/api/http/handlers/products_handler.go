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

// ProductsHandler exposes catalog endpoints.
type ProductsHandler struct {
	trading *service.TradingService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(trading *service.TradingService) *ProductsHandler {
	return &ProductsHandler{trading: trading}
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	input, err := parseProductRequest(c)
	if err != nil {
		return err
	}

	product, err := h.trading.CreateProduct(c.Context(), identity.AccountID, *input)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": product})
}

// List handles GET /api/products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	products, err := h.trading.ListProducts(c.Context(), identity.AccountID, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(fiber.Map{"data": products})
}

// Get handles GET /api/products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	product, err := h.trading.GetProduct(c.Context(), identity.AccountID, c.Params("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// Update handles PUT /api/products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	input, err := parseProductRequest(c)
	if err != nil {
		return err
	}

	product, err := h.trading.UpdateProduct(c.Context(), identity.AccountID, c.Params("id"), *input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": product})
}

// Delete handles DELETE /api/products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	if err := h.trading.DeleteProduct(c.Context(), identity.AccountID, c.Params("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseProductRequest(c *fiber.Ctx) (*service.ProductInput, error) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Unit == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "name and unit required")
	}
	if req.UnitPrice < 0 || req.StockQuantity < 0 || req.LowStockLevel < 0 {
		return nil, fiber.NewError(http.StatusBadRequest, "price and quantities must not be negative")
	}

	return &service.ProductInput{
		Name:          req.Name,
		Unit:          req.Unit,
		UnitPrice:     req.UnitPrice,
		StockQuantity: req.StockQuantity,
		LowStockLevel: req.LowStockLevel,
	}, nil
}
