// Package cart keeps a per-session shopping cart over demo store products and
// checks it out as a demo store cart.
package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"dashboard.GO/client/fakestore"
)

var ErrEmpty = errors.New("cart: nothing to check out")

type Item struct {
	ProductID int     `json:"productId" validate:"required,gt=0"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity"`
}

// Cart is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

// Add puts quantity of item in the cart, increasing an existing line.
// A quantity below 1 counts as 1.
func (c *Cart) Add(item Item, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += quantity
			return
		}
	}
	item.Quantity = quantity
	c.items = append(c.items, item)
}

func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

// UpdateQuantity sets a line's quantity; zero or less removes it.
func (c *Cart) UpdateQuantity(productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total is the sum of price times quantity.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var t float64
	for _, it := range c.items {
		t += it.Price * float64(it.Quantity)
	}
	return t
}

func (c *Cart) removeLocked(productID int) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Creator submits a cart to the demo store.
type Creator interface {
	CreateCart(ctx context.Context, req fakestore.CreateCartRequest) (*fakestore.Cart, error)
}

// Checkout submits the cart for userID. On success the submitted quantities
// leave the cart; lines added or increased while the request was in flight stay.
func (c *Cart) Checkout(ctx context.Context, creator Creator, userID int, now time.Time) (*fakestore.Cart, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	req := fakestore.CreateCartRequest{
		UserID: userID,
		Date:   now.UTC().Format("2006-01-02"),
	}
	for _, it := range items {
		req.Products = append(req.Products, fakestore.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	created, err := creator.CreateCart(ctx, req)
	if err != nil {
		return nil, err
	}
	c.settle(items)
	return created, nil
}

func (c *Cart) settle(submitted []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sub := range submitted {
		for i := range c.items {
			if c.items[i].ProductID == sub.ProductID {
				c.items[i].Quantity -= sub.Quantity
				break
			}
		}
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Store holds one cart per session.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

func (s *Store) Get(session string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[session]
	if !ok {
		c = &Cart{}
		s.carts[session] = c
	}
	return c
}

func (s *Store) Drop(session string) {
	s.mu.Lock()
	delete(s.carts, session)
	s.mu.Unlock()
}
