package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "goldleaf/internal/log"
	"goldleaf/internal/services"
)

// RequireAdmin gates the admin API behind a valid bearer token.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "no_token"})
			return jsonError(c, fiber.StatusUnauthorized, "authorization required")
		}
		claims, err := auth.Validate(token)
		if err != nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": err.Error()})
			return jsonError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals("admin_id", claims.AdminID)
		c.Locals("admin_email", claims.Email)
		return c.Next()
	}
}
