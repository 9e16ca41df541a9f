package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "goldleaf/internal/log"
	"goldleaf/internal/services"
	"goldleaf/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := h.Auth.Login(email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonError(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"token": token})
}
