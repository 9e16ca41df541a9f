package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"goldleaf/internal/auth"
	"goldleaf/internal/config"
	"goldleaf/internal/http/handlers"
	applog "goldleaf/internal/log"
	"goldleaf/internal/notify"
	"goldleaf/internal/repos"
	"goldleaf/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Notification sink; without credentials sends go to the log only
	var sender notify.Sender = notify.LogSender{}
	if cfg.NotifyKey != "" {
		sender = notify.NewEmailSender(cfg.NotifyURL, cfg.NotifyServiceID, cfg.NotifyKey)
	}

	// Admin auth wiring
	authSvc := &services.AuthService{
		Admins: repos.NewAdminRepo(db),
		Tokens: auth.NewTokenManager(cfg.JWTSecret, 12*time.Hour),
	}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and return a friendly message without leaking internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 5 << 20 // 5 MiB, image uploads included

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
	}))

	// ---------- Static media ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /media -> %s", mediaDir)

	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, sender)

	api := app.Group("/api")

	// Catalog
	api.Get("/categories", deps.CatalogHandler.Categories)
	api.Get("/products", limiter.New(limiter.Config{Max: 60, Expiration: time.Minute}), deps.CatalogHandler.Products)
	api.Get("/products/featured", deps.CatalogHandler.Featured)
	api.Get("/products/:slug", deps.CatalogHandler.Detail)
	api.Get("/products/:slug/suggested", deps.CatalogHandler.Suggested)

	// Reviews
	api.Get("/products/:id/reviews", deps.ReviewHandler.List)
	api.Post("/products/:id/reviews", deps.ReviewHandler.Submit)

	// Cart
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Put("/cart/items/:productId", deps.CartHandler.Update)
	api.Delete("/cart/items/:productId", deps.CartHandler.Remove)
	api.Delete("/cart", deps.CartHandler.Clear)

	// Checkout & order lookup
	api.Post("/checkout", deps.CheckoutHandler.Place)
	api.Get("/orders/:number", deps.OrderHandler.Lookup)

	// Admin (login throttled)
	api.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many attempts, please try again later",
			})
		},
	}), authH.Login)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/orders", deps.AdminHandler.OrdersList)
	admin.Get("/stats", deps.AdminHandler.Stats)
	admin.Put("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/products", deps.AdminHandler.ProductsList)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Put("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Delete("/products/:id", deps.AdminHandler.DeleteProduct)
	admin.Put("/products/:id/categories", deps.AdminHandler.SetProductCategories)
	admin.Post("/categories", deps.AdminHandler.CreateCategory)
	admin.Put("/categories/:id", deps.AdminHandler.UpdateCategory)
	admin.Delete("/categories/:id", deps.AdminHandler.DeleteCategory)
	admin.Get("/reviews", deps.AdminHandler.ReviewsList)
	admin.Put("/reviews/:id/approval", deps.AdminHandler.SetReviewApproval)
	admin.Post("/upload", deps.UploadHandler.Upload)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
