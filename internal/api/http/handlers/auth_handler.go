package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/harborline/fishmarket-service/internal/api/dto"
	"github.com/harborline/fishmarket-service/internal/auth"
	"github.com/harborline/fishmarket-service/internal/service"
	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// AuthHandler exposes registration, login, and token lifecycle endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.BusinessName == "" || req.OwnerName == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "business_name, owner_name, email, password required")
	}

	account, pair, err := h.auth.RegisterOwner(c.Context(), req.BusinessName, req.OwnerName, req.Email, req.Password)
	if err != nil {
		if apperrors.HasCode(err, "STORE_UNAVAILABLE") {
			return err
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": fiber.Map{
				"id":            account.ID,
				"email":         account.Email,
				"business_name": account.BusinessName,
				"owner_name":    account.OwnerName,
			},
			"auth": tokenPairResponse(pair),
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	account, pair, err := h.auth.LoginOwner(c.Context(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": fiber.Map{
				"id":            account.ID,
				"email":         account.Email,
				"business_name": account.BusinessName,
			},
			"auth": tokenPairResponse(pair),
		},
	})
}

// WorkerLogin handles POST /auth/workers/login.
func (h *AuthHandler) WorkerLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	worker, pair, err := h.auth.LoginWorker(c.Context(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"worker": fiber.Map{
				"id":    worker.ID,
				"name":  worker.Name,
				"email": worker.Email,
			},
			"auth": tokenPairResponse(pair),
		},
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	accessToken, expiresAt, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AccessTokenResponse{
			AccessToken:     accessToken,
			AccessExpiresAt: expiresAt,
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(http.StatusBadRequest, "refresh_token required")
	}

	if err := h.auth.Logout(c.Context(), req.RefreshToken); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me, echoing the resolved identity.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	resp := dto.IdentityResponse{
		AccountID:    identity.AccountID,
		Email:        identity.Email,
		BusinessName: identity.BusinessName,
		OwnerName:    identity.OwnerName,
		Role:         string(identity.Role()),
	}
	if worker, isWorker := identity.Worker(); isWorker {
		permissions := make([]string, 0, len(worker.Permissions))
		for name := range worker.Permissions {
			permissions = append(permissions, name)
		}
		resp.Worker = &dto.WorkerIdentity{
			WorkerID:    worker.WorkerID,
			Name:        worker.Name,
			Email:       worker.Email,
			Permissions: permissions,
		}
	}

	return c.JSON(fiber.Map{"data": resp})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired()
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "current_password and new_password required")
	}

	if err := h.auth.ChangePassword(c.Context(), identity, req.CurrentPassword, req.NewPassword); err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}
	return c.SendStatus(http.StatusNoContent)
}

func tokenPairResponse(pair *service.TokenPair) dto.TokenPairResponse {
	return dto.TokenPairResponse{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}
