// Package cart holds the in-memory shopping cart for a single session.
// Entries are keyed by product id and keep their insertion order for display.
package cart

import (
	"github.com/shopspring/decimal"

	"goldleaf/internal/domain"
)

type Item struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart accumulates quantity on repeated adds of the same product and never
// holds an entry with quantity <= 0. Not safe for concurrent use; the owning
// service serializes access per session.
type Cart struct {
	items []Item
}

func New() *Cart { return &Cart{} }

// AddItem increments the quantity of an existing entry or appends a new one.
// A quantity below 1 counts as 1.
func (c *Cart) AddItem(p domain.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity += qty
			return
		}
	}
	c.items = append(c.items, Item{Product: p, Quantity: qty})
}

// UpdateQuantity sets the quantity for productID; qty <= 0 removes the entry.
// Unknown product ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = qty
			return
		}
	}
}

// RemoveItem drops the entry for productID if present.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() { c.items = nil }

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

// TotalItems is the sum of quantities across all entries.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price x quantity over all entries.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
