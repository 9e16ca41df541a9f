package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "goldleaf/internal/log"
	"goldleaf/internal/services"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

// POST /api/checkout
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	var in services.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if errs := in.Validate(); len(errs) > 0 {
		applog.Security(c, "checkout.validation.fail", map[string]any{"fields": errs})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	order, err := h.Checkout.Place(c.Context(), sid, in)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return jsonError(c, fiber.StatusBadRequest, "your cart is empty")
		}
		applog.Error(c, "checkout.place.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not place order, please try again")
	}

	applog.Audit(c, "checkout.place", map[string]any{
		"order_number": order.OrderNumber,
		"total":        order.Total.String(),
	})
	return c.Status(fiber.StatusCreated).JSON(order)
}
