package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldleaf/internal/notify"
	"goldleaf/internal/repos"
	"goldleaf/internal/services"
)

// recordingSender captures sends; fail makes every send error.
type recordingSender struct {
	sent []string // template ids in call order
	fail bool
}

func (s *recordingSender) Send(_ context.Context, templateID, _ string, _ notify.Params) error {
	s.sent = append(s.sent, templateID)
	if s.fail {
		return errors.New("smtp down")
	}
	return nil
}

func newCheckout(t *testing.T, sender notify.Sender) (*services.CartService, *services.CheckoutService, *repos.OrderRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	prodRepo := repos.NewProductRepo(db)
	cartSvc := services.NewCartService(prodRepo, repos.NewCartRepo(db))
	orderRepo := repos.NewOrderRepo(db)
	checkoutSvc := services.NewCheckoutService(cartSvc, orderRepo, sender, services.NotifyTemplates{
		Buyer: "tpl-buyer", Admin: "tpl-admin", AdminEmail: "admin@goldleaf.test",
	})
	return cartSvc, checkoutSvc, orderRepo
}

func validInput() services.CheckoutInput {
	return services.CheckoutInput{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   "+91 9876543210",
		ShippingAddress: "12 Marine Drive, Apartment 4B",
		City:            "Mumbai",
		PostalCode:      "400001",
	}
}

func TestPlaceOrderFreeShippingOverThreshold(t *testing.T) {
	sender := &recordingSender{}
	cartSvc, checkoutSvc, orderRepo := newCheckout(t, sender)

	// seeded belt costs 1200, at or above the 999 threshold
	_, err := cartSvc.Add("sid-1", "prd-belt-01", 1)
	require.NoError(t, err)

	order, err := checkoutSvc.Place(context.Background(), "sid-1", validInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(1200)), "subtotal = %s", order.Subtotal)
	assert.True(t, order.ShippingCost.IsZero(), "shipping = %s", order.ShippingCost)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(1200)), "total = %s", order.Total)

	// durable and readable back by number, with the item snapshot
	got, items, err := orderRepo.GetByNumber(order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
	require.Len(t, items, 1)
	assert.Equal(t, "Black Leather Belt", items[0].ProductName)
	assert.Equal(t, 1, items[0].Quantity)

	// both notifications attempted, then the cart cleared
	assert.Equal(t, []string{"tpl-buyer", "tpl-admin"}, sender.sent)
	assert.Equal(t, 0, cartSvc.View("sid-1").TotalItems)
}

func TestPlaceOrderFlatShippingUnderThreshold(t *testing.T) {
	cartSvc, checkoutSvc, _ := newCheckout(t, &recordingSender{})

	// gold hoops cost 499, below the threshold
	_, err := cartSvc.Add("sid-2", "prd-ear-01", 1)
	require.NoError(t, err)

	order, err := checkoutSvc.Place(context.Background(), "sid-2", validInput())
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(499)))
	assert.True(t, order.ShippingCost.Equal(decimal.NewFromInt(99)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(598)))
}

func TestPlaceOrderSurvivesNotificationFailure(t *testing.T) {
	sender := &recordingSender{fail: true}
	cartSvc, checkoutSvc, orderRepo := newCheckout(t, sender)

	_, err := cartSvc.Add("sid-3", "prd-chain-01", 2)
	require.NoError(t, err)

	order, err := checkoutSvc.Place(context.Background(), "sid-3", validInput())
	require.NoError(t, err, "send failures must not fail the order")

	// both sends were still attempted independently
	assert.Len(t, sender.sent, 2)

	_, items, err := orderRepo.GetByNumber(order.OrderNumber)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	_, checkoutSvc, _ := newCheckout(t, &recordingSender{})
	_, err := checkoutSvc.Place(context.Background(), "sid-empty", validInput())
	assert.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestCheckoutInputValidation(t *testing.T) {
	in := services.CheckoutInput{
		CustomerName:    "J",
		CustomerEmail:   "not-an-email",
		CustomerPhone:   "12345",
		ShippingAddress: "short",
		City:            "",
		PostalCode:      "40",
	}
	errs := in.Validate()
	for _, field := range []string{
		"customer_name", "customer_email", "customer_phone",
		"shipping_address", "city", "postal_code",
	} {
		assert.Contains(t, errs, field)
	}

	good := validInput()
	assert.Empty(t, good.Validate())
}

func TestShippingCost(t *testing.T) {
	assert.True(t, services.ShippingCost(decimal.NewFromInt(999)).IsZero())
	assert.True(t, services.ShippingCost(decimal.NewFromInt(1500)).IsZero())
	assert.True(t, services.ShippingCost(decimal.NewFromInt(998)).Equal(decimal.NewFromInt(99)))
	assert.True(t, services.ShippingCost(decimal.NewFromInt(500)).Equal(decimal.NewFromInt(99)))
}
