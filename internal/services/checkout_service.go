package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"goldleaf/internal/domain"
	applog "goldleaf/internal/log"
	"goldleaf/internal/notify"
	"goldleaf/internal/repos"
	"goldleaf/internal/validate"
)

// Orders at or above the threshold ship free; everything else pays the flat fee.
var (
	FreeShippingThreshold = decimal.NewFromInt(999)
	ShippingFee           = decimal.NewFromInt(99)
)

var ErrEmptyCart = errors.New("cart is empty")

// NotifyTemplates names the two transactional emails sent after an order is
// durable. Either may be empty, which skips that send.
type NotifyTemplates struct {
	Buyer      string
	Admin      string
	AdminEmail string
}

type CheckoutService struct {
	Cart      *CartService
	Orders    *repos.OrderRepo
	Sender    notify.Sender
	Templates NotifyTemplates
}

func NewCheckoutService(cart *CartService, orders *repos.OrderRepo, sender notify.Sender, tpl NotifyTemplates) *CheckoutService {
	return &CheckoutService{Cart: cart, Orders: orders, Sender: sender, Templates: tpl}
}

type CheckoutInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
	Notes           string `json:"notes"`
}

// Validate checks every field and returns per-field messages; an empty map
// means the input is acceptable. Fields are normalized (trimmed) in place.
func (in *CheckoutInput) Validate() map[string]string {
	errs := map[string]string{}
	var ok bool
	if in.CustomerName, ok = validate.Name(in.CustomerName); !ok {
		errs["customer_name"] = "Name must be at least 2 characters"
	}
	if in.CustomerEmail, ok = validate.Email(in.CustomerEmail); !ok {
		errs["customer_email"] = "Invalid email address"
	}
	if in.CustomerPhone, ok = validate.Phone(in.CustomerPhone); !ok {
		errs["customer_phone"] = "Phone number must be at least 10 digits"
	}
	if in.ShippingAddress, ok = validate.Address(in.ShippingAddress); !ok {
		errs["shipping_address"] = "Address must be at least 10 characters"
	}
	if in.City, ok = validate.City(in.City); !ok {
		errs["city"] = "City is required"
	}
	if in.PostalCode, ok = validate.PostalCode(in.PostalCode); !ok {
		errs["postal_code"] = "Postal code is required"
	}
	if in.Notes, ok = validate.Notes(in.Notes); !ok {
		errs["notes"] = "Notes are too long"
	}
	return errs
}

// ShippingCost applies the free-shipping threshold to a subtotal.
func ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}

// Place persists the order with its line items as one unit, fires the two
// best-effort notifications, clears the cart and returns the stored order.
// Callers must have validated in first.
func (s *CheckoutService) Place(ctx context.Context, sessionID string, in CheckoutInput) (domain.Order, error) {
	items := s.Cart.Items(sessionID)
	if len(items) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	subtotal := decimal.Zero
	orderID := uuid.NewString()
	lines := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		lineTotal := it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, domain.OrderItem{
			ID:           uuid.NewString(),
			OrderID:      orderID,
			ProductID:    it.Product.ID,
			ProductName:  it.Product.Name,
			ProductPrice: it.Product.Price,
			Quantity:     it.Quantity,
			Total:        lineTotal,
		})
	}
	shipping := ShippingCost(subtotal)

	order := domain.Order{
		ID:              orderID,
		OrderNumber:     fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		ShippingAddress: in.ShippingAddress,
		City:            in.City,
		PostalCode:      in.PostalCode,
		Country:         "India",
		Notes:           in.Notes,
		Status:          domain.OrderPending,
		Subtotal:        subtotal,
		ShippingCost:    shipping,
		Total:           subtotal.Add(shipping),
	}

	if err := s.Orders.CreateWithItems(order, lines); err != nil {
		return domain.Order{}, err
	}

	// The order is durable from here on. Notification failures are logged and
	// swallowed; the two sends are independent of each other.
	s.notifyBuyer(ctx, order)
	s.notifyAdmin(ctx, order)

	s.Cart.Clear(sessionID)
	return order, nil
}

func (s *CheckoutService) notifyBuyer(ctx context.Context, o domain.Order) {
	if s.Sender == nil || s.Templates.Buyer == "" {
		return
	}
	err := s.Sender.Send(ctx, s.Templates.Buyer, o.CustomerEmail, notify.Params{
		"to_name":      o.CustomerName,
		"order_number": o.OrderNumber,
		"status":       "confirmed",
		"message": fmt.Sprintf("Thank you for your order! Your order %s has been confirmed and will be processed soon.",
			o.OrderNumber),
	})
	if err != nil {
		applog.Error(nil, "checkout.notify.buyer.fail", err, map[string]any{"order": o.OrderNumber})
	}
}

func (s *CheckoutService) notifyAdmin(ctx context.Context, o domain.Order) {
	if s.Sender == nil || s.Templates.Admin == "" {
		return
	}
	err := s.Sender.Send(ctx, s.Templates.Admin, s.Templates.AdminEmail, notify.Params{
		"to_name":       "Admin",
		"order_number":  o.OrderNumber,
		"customer_name": o.CustomerName,
		"total":         o.Total.String(),
		"message": fmt.Sprintf("New order %s received from %s for %s",
			o.OrderNumber, o.CustomerName, o.Total.String()),
	})
	if err != nil {
		applog.Error(nil, "checkout.notify.admin.fail", err, map[string]any{"order": o.OrderNumber})
	}
}
