// Package fakestore wraps the public demo store API used by the product,
// cart and user pages.
package fakestore

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dashboard.GO/client"
	"dashboard.GO/core/cache"
	"dashboard.GO/model/catalog"
)

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
}

func (p Product) ItemTitle() string    { return p.Title }
func (p Product) ItemCategory() string { return p.Category }
func (p Product) ItemPrice() float64   { return p.Price }

// Pinnable converts a demo product for the pinned grid. The demo store has no
// product codes, so the numeric id stands in.
func (p Product) Pinnable(index int) catalog.Product {
	code := "FS" + strconv.Itoa(p.ID)
	price := p.Price
	return catalog.Product{
		ID:          catalog.SyntheticID(code, index),
		ImageURL:    p.Image,
		Name:        p.Title,
		ProductCode: code,
		Price:       &price,
	}
}

type CartItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type Cart struct {
	ID       int        `json:"id"`
	UserID   int        `json:"userId"`
	Date     string     `json:"date,omitempty"`
	Products []CartItem `json:"products"`
}

// Items is the total quantity across the cart's lines.
func (c Cart) Items() int {
	n := 0
	for _, it := range c.Products {
		n += it.Quantity
	}
	return n
}

type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type CreateCartRequest struct {
	UserID   int        `json:"userId" validate:"required,gt=0"`
	Date     string     `json:"date,omitempty"`
	Products []CartItem `json:"products" validate:"required,min=1,dive"`
}

type Client struct {
	hc      *http.Client
	baseURL string
	store   cache.Store
	ttl     time.Duration
}

// New returns a demo store client. Read endpoints are cached in store under
// the catalog tag; a nil store disables caching.
func New(hc *http.Client, baseURL string, store cache.Store, ttl time.Duration) *Client {
	return &Client{
		hc:      hc,
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		ttl:     ttl,
	}
}

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	return getCached[[]Product](ctx, c, "products", "/products")
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return getCached[[]string](ctx, c, "categories", "/products/categories")
}

func (c *Client) Carts(ctx context.Context) ([]Cart, error) {
	return getCached[[]Cart](ctx, c, "carts", "/carts")
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	return getCached[[]User](ctx, c, "users", "/users")
}

// CreateCart posts a new cart and returns the stored copy.
func (c *Client) CreateCart(ctx context.Context, req CreateCartRequest) (*Cart, error) {
	var out Cart
	err := client.DoJSON(ctx, c.hc, client.Request{
		Op:     "create cart",
		Method: http.MethodPost,
		URL:    c.baseURL + "/carts",
		Body:   req,
	}, &out)
	if err != nil {
		return nil, err
	}
	if c.store != nil {
		_ = c.store.Invalidate(ctx, cache.TagCatalog)
	}
	return &out, nil
}

func getCached[T any](ctx context.Context, c *Client, op, path string) (T, error) {
	return cache.Remember(ctx, c.store, "fakestore:"+op, c.ttl, []string{cache.TagCatalog},
		func(ctx context.Context) (T, error) {
			var out T
			err := client.DoJSON(ctx, c.hc, client.Request{Op: op, URL: c.baseURL + path}, &out)
			return out, err
		})
}
