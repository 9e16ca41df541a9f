package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "goldleaf/internal/log"
	"goldleaf/internal/repos"
)

type OrderHandler struct {
	Repo *repos.OrderRepo
}

// GET /api/orders/:number is the public lookup by order number.
// Unknown numbers are a "not found" outcome, never an error page.
func (h *OrderHandler) Lookup(c *fiber.Ctx) error {
	number := strings.TrimSpace(c.Params("number"))
	if number == "" || !strings.HasPrefix(number, "ORD-") || len(number) > 32 {
		applog.Security(c, "validation.fail", map[string]any{"field": "order_number"})
		return notFound(c, "order not found")
	}
	order, items, err := h.Repo.GetByNumber(number)
	if err != nil {
		return notFound(c, "order not found")
	}
	return c.JSON(fiber.Map{"order": order, "items": items})
}
