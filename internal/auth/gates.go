package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/harborline/fishmarket-service/pkg/util"
)

// RequireAdmin passes only business-owner identities.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewAuthRequired()
		}
		if !identity.IsAdmin() {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}

// RequireCapability passes admins unconditionally and workers whose resolved
// permission set contains the named capability.
func RequireCapability(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewAuthRequired()
		}
		if !identity.HasCapability(name) {
			return apperrors.NewForbidden(fmt.Sprintf("missing capability %s", name))
		}
		return c.Next()
	}
}
