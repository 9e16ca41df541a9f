package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"goldleaf/internal/domain"
	applog "goldleaf/internal/log"
	"goldleaf/internal/notify"
	"goldleaf/internal/repos"
	"goldleaf/internal/validate"
)

type AdminHandler struct {
	Orders  *repos.OrderRepo
	Prods   *repos.ProductRepo
	Cats    *repos.CategoryRepo
	Reviews *repos.ReviewRepo

	// Status-change emails to the customer; best-effort like all sends.
	Sender        notify.Sender
	BuyerTemplate string
}

// ---------- Orders ----------

type adminOrder struct {
	domain.Order
	Items []domain.OrderItem `json:"order_items"`
}

// GET /api/admin/orders
func (h *AdminHandler) OrdersList(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load orders")
	}
	out := make([]adminOrder, 0, len(orders))
	for _, o := range orders {
		items, err := h.Orders.Items(o.ID)
		if err != nil {
			applog.Error(c, "admin.orders.items.fail", err, map[string]any{"order_id": o.ID})
			return jsonError(c, fiber.StatusInternalServerError, "could not load orders")
		}
		out = append(out, adminOrder{Order: o, Items: items})
	}
	return c.JSON(out)
}

// GET /api/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Orders.Stats()
	if err != nil {
		applog.Error(c, "admin.stats.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load stats")
	}
	recent, err := h.Orders.ListLatest(5)
	if err != nil {
		applog.Error(c, "admin.stats.recent.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load stats")
	}
	return c.JSON(fiber.Map{
		"total_orders":   stats.TotalOrders,
		"pending_orders": stats.PendingOrders,
		"total_revenue":  stats.TotalRevenue,
		"recent_orders":  recent,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing order id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if !domain.ValidOrderStatus(req.Status) {
		applog.Security(c, "validation.fail", map[string]any{"field": "status"})
		return jsonError(c, fiber.StatusBadRequest, "invalid status")
	}

	order, err := h.Orders.Get(id)
	if err != nil {
		return notFound(c, "order not found")
	}
	if err := h.Orders.UpdateStatus(id, req.Status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return jsonError(c, fiber.StatusInternalServerError, "could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": req.Status})

	if h.Sender != nil && h.BuyerTemplate != "" {
		err := h.Sender.Send(c.Context(), h.BuyerTemplate, order.CustomerEmail, notify.Params{
			"to_name":      order.CustomerName,
			"order_number": order.OrderNumber,
			"status":       req.Status,
			"message": fmt.Sprintf("Your order %s status has been updated to %s.",
				order.OrderNumber, req.Status),
		})
		if err != nil {
			applog.Error(c, "admin.orders.notify.fail", err, map[string]any{"order_id": id})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Products ----------

type productRequest struct {
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Description     string   `json:"description"`
	Price           string   `json:"price"`
	OriginalPrice   string   `json:"original_price"`
	ImageURL        string   `json:"image_url"`
	Images          []string `json:"images"`
	StockStatus     string   `json:"stock_status"`
	Featured        bool     `json:"featured"`
	PopularityScore float64  `json:"popularity_score"`
}

func (req *productRequest) toInput() (repos.ProductInput, string) {
	name, ok := validate.Name(req.Name)
	if !ok {
		return repos.ProductInput{}, "name must be at least 2 characters"
	}
	slug := req.Slug
	if slug == "" {
		slug = validate.Slugify(name)
	}
	if _, ok := validate.Slug(slug); !ok {
		return repos.ProductInput{}, "invalid slug"
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return repos.ProductInput{}, "price must be a non-negative number"
	}
	var orig decimal.NullDecimal
	if req.OriginalPrice != "" {
		d, err := decimal.NewFromString(req.OriginalPrice)
		if err != nil || d.LessThan(price) {
			return repos.ProductInput{}, "original price must be at least the price"
		}
		orig = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	status := req.StockStatus
	if status == "" {
		status = domain.StockInStock
	}
	if status != domain.StockInStock && status != domain.StockLowStock && status != domain.StockOutOfStock {
		return repos.ProductInput{}, "invalid stock status"
	}
	imagesJSON := ""
	if len(req.Images) > 0 {
		b, err := json.Marshal(req.Images)
		if err != nil {
			return repos.ProductInput{}, "invalid images"
		}
		imagesJSON = string(b)
	}
	return repos.ProductInput{
		Name: name, Slug: slug, Description: req.Description,
		Price: price, OriginalPrice: orig,
		ImageURL: req.ImageURL, ImagesJSON: imagesJSON,
		StockStatus: status, Featured: req.Featured,
		PopularityScore: req.PopularityScore,
	}, ""
}

// GET /api/admin/products
func (h *AdminHandler) ProductsList(c *fiber.Ctx) error {
	products, err := h.Prods.List()
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load products")
	}
	return c.JSON(products)
}

// POST /api/admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	in, msg := req.toInput()
	if msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "product", "msg": msg})
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	id := uuid.NewString()
	if err := h.Prods.Create(id, in); err != nil {
		applog.Error(c, "admin.products.create.fail", err, nil)
		return jsonError(c, fiber.StatusBadRequest, "could not create product")
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": id})
	p, err := h.Prods.Get(id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load product")
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /api/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing product id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	in, msg := req.toInput()
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if _, err := h.Prods.Get(id); err != nil {
		return notFound(c, "product not found")
	}
	if err := h.Prods.Update(id, in); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
		return jsonError(c, fiber.StatusBadRequest, "could not update product")
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id})
	p, err := h.Prods.Get(id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load product")
	}
	return c.JSON(p)
}

// DELETE /api/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing product id")
	}
	if err := h.Prods.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
		return jsonError(c, fiber.StatusBadRequest, "could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

type productCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

// PUT /api/admin/products/:id/categories replaces the associations.
func (h *AdminHandler) SetProductCategories(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing product id")
	}
	var req productCategoriesRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	for _, cid := range req.CategoryIDs {
		if _, ok := validate.ID(cid); !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid category id")
		}
	}
	if err := h.Prods.SetCategories(id, req.CategoryIDs); err != nil {
		applog.Error(c, "admin.products.categories.fail", err, map[string]any{"product_id": id})
		return jsonError(c, fiber.StatusBadRequest, "could not update categories")
	}
	applog.Audit(c, "admin.products.categories", map[string]any{"product_id": id, "count": len(req.CategoryIDs)})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Categories ----------

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (req *categoryRequest) normalize() (categoryRequest, string) {
	name, ok := validate.Name(req.Name)
	if !ok {
		return categoryRequest{}, "name must be at least 2 characters"
	}
	slug := req.Slug
	if slug == "" {
		slug = validate.Slugify(name)
	}
	if _, ok := validate.Slug(slug); !ok {
		return categoryRequest{}, "invalid slug"
	}
	return categoryRequest{Name: name, Slug: slug, Description: req.Description, ImageURL: req.ImageURL}, ""
}

// POST /api/admin/categories
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	in, msg := req.normalize()
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	id := uuid.NewString()
	if err := h.Cats.Create(id, in.Name, in.Slug, in.Description, in.ImageURL); err != nil {
		applog.Error(c, "admin.categories.create.fail", err, nil)
		return jsonError(c, fiber.StatusBadRequest, "could not create category")
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category_id": id})
	cat, err := h.Cats.Get(id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load category")
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PUT /api/admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing category id")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	in, msg := req.normalize()
	if msg != "" {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if _, err := h.Cats.Get(id); err != nil {
		return notFound(c, "category not found")
	}
	if err := h.Cats.Update(id, in.Name, in.Slug, in.Description, in.ImageURL); err != nil {
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category_id": id})
		return jsonError(c, fiber.StatusBadRequest, "could not update category")
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category_id": id})
	cat, err := h.Cats.Get(id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "could not load category")
	}
	return c.JSON(cat)
}

// DELETE /api/admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing category id")
	}
	if err := h.Cats.Delete(id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category_id": id})
		return jsonError(c, fiber.StatusBadRequest, "could not delete category")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// ---------- Reviews ----------

// GET /api/admin/reviews
func (h *AdminHandler) ReviewsList(c *fiber.Ctx) error {
	reviews, err := h.Reviews.ListAll()
	if err != nil {
		applog.Error(c, "admin.reviews.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load reviews")
	}
	return c.JSON(reviews)
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

// PUT /api/admin/reviews/:id/approval
func (h *AdminHandler) SetReviewApproval(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "missing review id")
	}
	var req approvalRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Reviews.SetApproved(id, req.Approved); err != nil {
		applog.Error(c, "admin.reviews.approve.fail", err, map[string]any{"review_id": id})
		return jsonError(c, fiber.StatusBadRequest, "could not update review")
	}
	applog.Audit(c, "admin.reviews.approve", map[string]any{"review_id": id, "approved": req.Approved})
	return c.SendStatus(fiber.StatusNoContent)
}
