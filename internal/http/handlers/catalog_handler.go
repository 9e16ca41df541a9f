package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"goldleaf/internal/catalog"
	applog "goldleaf/internal/log"
	"goldleaf/internal/services"
	"goldleaf/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "catalog.categories.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load categories")
	}
	return c.JSON(cats)
}

// GET /api/products?category=<slug>&search=<q>&sort=<mode>
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	categorySlug := strings.TrimSpace(c.Query("category"))
	if categorySlug != "" {
		if _, ok := validate.Slug(categorySlug); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return jsonError(c, fiber.StatusBadRequest, "invalid category")
		}
	}
	search := strings.TrimSpace(c.Query("search"))
	if len(search) > 100 {
		search = search[:100]
	}
	sort := catalog.ParseSort(c.Query("sort"))

	products, err := h.Catalog.ListProducts(categorySlug, search, sort)
	if err != nil {
		applog.Error(c, "catalog.products.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(fiber.Map{"products": products, "count": len(products)})
}

// GET /api/products/featured
func (h *CatalogHandler) Featured(c *fiber.Ctx) error {
	products, err := h.Catalog.Featured(4)
	if err != nil {
		applog.Error(c, "catalog.featured.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(products)
}

// GET /api/products/:slug
func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "slug"})
		return notFound(c, "product not found")
	}
	p, err := h.Catalog.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "product not found")
		}
		applog.Error(c, "catalog.detail.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load product")
	}
	return c.JSON(p)
}

// GET /api/products/:slug/suggested
func (h *CatalogHandler) Suggested(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return notFound(c, "product not found")
	}
	products, err := h.Catalog.Suggested(slug, 4)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return notFound(c, "product not found")
		}
		applog.Error(c, "catalog.suggested.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(products)
}
