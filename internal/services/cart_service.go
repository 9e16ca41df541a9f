package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"goldleaf/internal/cart"
	applog "goldleaf/internal/log"
	"goldleaf/internal/repos"
)

// CartService owns one in-memory cart per session. The SQLite snapshot is a
// convenience across restarts: writes to it are best-effort and a failed
// persist never fails the cart operation.
type CartService struct {
	Prods *repos.ProductRepo
	Store *repos.CartRepo

	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func NewCartService(prods *repos.ProductRepo, store *repos.CartRepo) *CartService {
	return &CartService{Prods: prods, Store: store, carts: map[string]*cart.Cart{}}
}

type CartView struct {
	Items      []cart.Item     `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// get returns the session cart, restoring it from the snapshot on first use.
// Callers must hold mu.
func (s *CartService) get(sessionID string) *cart.Cart {
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c := cart.New()
	if s.Store != nil {
		if lines, err := s.Store.Load(sessionID); err == nil {
			for _, l := range lines {
				c.AddItem(l.Product, l.Quantity)
			}
		} else {
			applog.Error(nil, "cart.restore.fail", err, map[string]any{"sid": sessionID})
		}
	}
	s.carts[sessionID] = c
	return c
}

func (s *CartService) persist(sessionID string, c *cart.Cart) {
	if s.Store == nil {
		return
	}
	lines := make([]repos.CartLine, 0, c.Len())
	for _, it := range c.Items() {
		lines = append(lines, repos.CartLine{Product: it.Product, Quantity: it.Quantity})
	}
	if err := s.Store.Save(sessionID, lines); err != nil {
		applog.Error(nil, "cart.persist.fail", err, map[string]any{"sid": sessionID})
	}
}

func view(c *cart.Cart) CartView {
	return CartView{Items: c.Items(), TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}

func (s *CartService) View(sessionID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view(s.get(sessionID))
}

// Items returns the raw cart entries for checkout.
func (s *CartService) Items(sessionID string) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).Items()
}

func (s *CartService) Add(sessionID, productID string, qty int) (CartView, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		return CartView{}, err
	}
	return s.mutate(sessionID, func(c *cart.Cart) { c.AddItem(p, qty) }), nil
}

func (s *CartService) UpdateQuantity(sessionID, productID string, qty int) CartView {
	return s.mutate(sessionID, func(c *cart.Cart) { c.UpdateQuantity(productID, qty) })
}

func (s *CartService) Remove(sessionID, productID string) CartView {
	return s.mutate(sessionID, func(c *cart.Cart) { c.RemoveItem(productID) })
}

func (s *CartService) Clear(sessionID string) CartView {
	return s.mutate(sessionID, func(c *cart.Cart) { c.Clear() })
}

func (s *CartService) mutate(sessionID string, fn func(*cart.Cart)) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.get(sessionID)
	fn(c)
	s.persist(sessionID, c)
	return view(c)
}

// Subtotal over the session cart, for checkout.
func (s *CartService) Subtotal(sessionID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).TotalPrice()
}
