package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "goldleaf/internal/log"
	"goldleaf/internal/services"
	"goldleaf/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.Cart.View(ensureSID(c)))
}

type cartAddRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// POST /api/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req cartAddRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_id"})
		return jsonError(c, fiber.StatusBadRequest, "missing product_id")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	if req.Quantity > 50 {
		req.Quantity = 50
	}
	cv, err := h.Cart.Add(ensureSID(c), req.ProductID, req.Quantity)
	if err != nil {
		return notFound(c, "product not found")
	}
	return c.JSON(cv)
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// PUT /api/cart/items/:productId
// A quantity of zero removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing product id")
	}
	var req cartUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	return c.JSON(h.Cart.UpdateQuantity(ensureSID(c), pid, req.Quantity))
}

// DELETE /api/cart/items/:productId
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing product id")
	}
	return c.JSON(h.Cart.Remove(ensureSID(c), pid))
}

// DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	return c.JSON(h.Cart.Clear(ensureSID(c)))
}
