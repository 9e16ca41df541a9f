package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminRoutesRejectGarbageToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminLoginBadPassword(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "admin@goldleaf.test",
		"password": "wrong",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminStatsWithValidToken(t *testing.T) {
	app := newTestApp(t)
	token := loginAdmin(t, app)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		TotalOrders   int `json:"total_orders"`
		PendingOrders int `json:"pending_orders"`
	}
	decodeBody(t, resp, &out)
	if out.TotalOrders != 0 || out.PendingOrders != 0 {
		t.Fatalf("fresh store stats = %+v, want zeros", out)
	}
}

func TestAdminCreateProduct(t *testing.T) {
	app := newTestApp(t)
	token := loginAdmin(t, app)

	req := jsonReq(http.MethodPost, "/api/admin/products", map[string]any{
		"name":         "Rope Chain",
		"slug":         "rope-chain",
		"price":        "899",
		"stock_status": "in_stock",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: status = %d, want 201", resp.StatusCode)
	}

	// publicly visible right away
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/products/rope-chain", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detail: status = %d, want 200", resp.StatusCode)
	}
}
