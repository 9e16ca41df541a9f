package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCheckoutValidationErrorsPerField(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodPost, "/api/checkout", map[string]string{
		"customer_name":    "J",
		"customer_email":   "nope",
		"customer_phone":   "123",
		"shipping_address": "short",
		"city":             "",
		"postal_code":      "1",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var out struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, resp, &out)
	for _, field := range []string{
		"customer_name", "customer_email", "customer_phone",
		"shipping_address", "city", "postal_code",
	} {
		if out.Errors[field] == "" {
			t.Errorf("missing validation message for %s", field)
		}
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(jsonReq(http.MethodPost, "/api/checkout", map[string]string{
		"customer_name":    "Jane Doe",
		"customer_email":   "jane@example.com",
		"customer_phone":   "9876543210",
		"shipping_address": "12 Marine Drive, Apartment 4B",
		"city":             "Mumbai",
		"postal_code":      "400001",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty cart: status = %d, want 400", resp.StatusCode)
	}
}

func TestCheckoutFlowEndToEnd(t *testing.T) {
	app := newTestApp(t)

	// add a seeded product; keep the minted session cookie
	resp, err := app.Test(jsonReq(http.MethodPost, "/api/cart/items", map[string]any{
		"product_id": "prd-chain-01",
		"quantity":   1,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cart add: status = %d, want 200", resp.StatusCode)
	}
	sid := sidCookie(t, resp)

	req := jsonReq(http.MethodPost, "/api/checkout", map[string]string{
		"customer_name":    "Jane Doe",
		"customer_email":   "jane@example.com",
		"customer_phone":   "9876543210",
		"shipping_address": "12 Marine Drive, Apartment 4B",
		"city":             "Mumbai",
		"postal_code":      "400001",
	})
	req.AddCookie(sid)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: status = %d, want 201", resp.StatusCode)
	}

	var order struct {
		OrderNumber string `json:"order_number"`
		Total       string `json:"total"`
	}
	decodeBody(t, resp, &order)
	if !strings.HasPrefix(order.OrderNumber, "ORD-") {
		t.Fatalf("order number = %q", order.OrderNumber)
	}
	if order.Total != "1499" {
		t.Fatalf("total = %q, want 1499", order.Total)
	}

	// public lookup by number
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/orders/"+order.OrderNumber, nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("lookup: status = %d, want 200", resp.StatusCode)
	}

	// cart is empty afterwards
	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(sid)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var cv struct {
		TotalItems int `json:"total_items"`
	}
	decodeBody(t, resp, &cv)
	if cv.TotalItems != 0 {
		t.Fatalf("cart after checkout = %d items, want 0", cv.TotalItems)
	}
}

func TestOrderLookupNotFound(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{
		"/api/orders/ORD-0000000000000",
		"/api/orders/whatever",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: status = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestProductListingAndSearch(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products?search=blk+blt", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out struct {
		Products []struct {
			Slug string `json:"slug"`
		} `json:"products"`
		Count int `json:"count"`
	}
	decodeBody(t, resp, &out)
	if out.Count != 1 || len(out.Products) != 1 || out.Products[0].Slug != "black-leather-belt" {
		t.Fatalf("search result = %+v", out)
	}

	// unknown category is empty, not an error
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/products?category=no-such", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	out.Products = nil
	decodeBody(t, resp, &out)
	if len(out.Products) != 0 {
		t.Fatalf("unknown category returned %d products", len(out.Products))
	}
}
