package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"goldleaf/internal/auth"
	"goldleaf/internal/config"
	"goldleaf/internal/http/handlers"
	"goldleaf/internal/notify"
	"goldleaf/internal/repos"
	"goldleaf/internal/services"
)

// newTestApp wires a fiber app over a fresh in-memory store with the same
// route layout as main.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		JWTSecret:       "test-secret",
		BuyerTemplateID: "tpl-buyer",
		AdminTemplateID: "tpl-admin",
		AdminEmail:      "admin@goldleaf.test",
		MediaDir:        t.TempDir(),
	}

	deps := handlers.NewDeps(db, cfg, notify.LogSender{})
	authSvc := &services.AuthService{
		Admins: repos.NewAdminRepo(db),
		Tokens: auth.NewTokenManager(cfg.JWTSecret, time.Hour),
	}
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": "something went wrong"})
		},
	})

	api := app.Group("/api")
	api.Get("/categories", deps.CatalogHandler.Categories)
	api.Get("/products", deps.CatalogHandler.Products)
	api.Get("/products/featured", deps.CatalogHandler.Featured)
	api.Get("/products/:slug", deps.CatalogHandler.Detail)
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Put("/cart/items/:productId", deps.CartHandler.Update)
	api.Post("/checkout", deps.CheckoutHandler.Place)
	api.Get("/orders/:number", deps.OrderHandler.Lookup)
	api.Post("/admin/login", authH.Login)

	admin := api.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/stats", deps.AdminHandler.Stats)
	admin.Get("/orders", deps.AdminHandler.OrdersList)
	admin.Post("/products", deps.AdminHandler.CreateProduct)

	return app
}

func jsonReq(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
}

// loginAdmin returns a bearer token for the seeded admin account.
func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(jsonReq(http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "admin@goldleaf.test",
		"password": "Passw0rd!",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &out)
	if out.Token == "" {
		t.Fatal("empty token")
	}
	return out.Token
}

// sidCookie pulls the cart session cookie out of a response.
func sidCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			return ck
		}
	}
	t.Fatal("no sid cookie set")
	return nil
}
