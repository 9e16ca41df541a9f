package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "goldleaf/internal/log"
	"goldleaf/internal/services"
	"goldleaf/internal/validate"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

// GET /api/products/:id/reviews
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	out, err := h.Reviews.ForProduct(pid)
	if err != nil {
		applog.Error(c, "reviews.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load reviews")
	}
	return c.JSON(out)
}

type reviewRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// POST /api/products/:id/reviews stores the review unapproved until moderated.
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c, "product not found")
	}
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	err := h.Reviews.Submit(pid, req.CustomerName, req.CustomerEmail, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReview) {
			applog.Security(c, "reviews.validation.fail", nil)
			return jsonError(c, fiber.StatusBadRequest, "invalid review")
		}
		return notFound(c, "product not found")
	}
	applog.Audit(c, "reviews.submit", map[string]any{"product_id": pid})
	return c.SendStatus(fiber.StatusCreated)
}
