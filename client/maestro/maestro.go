// Package maestro talks to the collections API: collection listing, products
// for a collection's pinned grid and the filter options for that collection.
package maestro

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dashboard.GO/client"
	"dashboard.GO/core/cache"
	"dashboard.GO/model/catalog"
	"dashboard.GO/service/filters"
)

const (
	DefaultPage            = 1
	DefaultPageSize        = 5
	DefaultProductPageSize = 10
)

type Options struct {
	BaseURL string
	// WarehouseOverride replaces server-supplied warehouse values with the fixed list.
	WarehouseOverride bool
	Cache             cache.Store
	CacheTTL          time.Duration
}

type Client struct {
	hc   *http.Client
	opts Options
}

func New(hc *http.Client, opts Options) *Client {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{hc: hc, opts: opts}
}

// GetCollections lists one page of collections.
func (c *Client) GetCollections(ctx context.Context, token string, page, pageSize int) (*catalog.CollectionPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var out catalog.CollectionPage
	err := client.DoJSON(ctx, c.hc, client.Request{
		Op:    "collections",
		URL:   c.opts.BaseURL + "/Collection/GetAll?" + q.Encode(),
		Token: token,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []catalog.Collection{}
	}
	return &out, nil
}

type wireProduct struct {
	ImageURL    string   `json:"imageUrl"`
	Name        string   `json:"name"`
	ProductCode string   `json:"productCode"`
	Price       *float64 `json:"price"`
}

type productsResponse struct {
	Status int `json:"status"`
	Data   struct {
		Data []wireProduct `json:"data"`
	} `json:"data"`
}

// GetProductsForConstants fetches the products a collection's pinned grid can
// draw from. Names are reduced to their display form and IDs are synthesized
// from the product code and position.
func (c *Client) GetProductsForConstants(ctx context.Context, token string, collectionID int, query filters.Query) ([]catalog.Product, error) {
	if query.Page < 1 {
		query.Page = DefaultPage
	}
	if query.PageSize < 1 {
		query.PageSize = DefaultProductPageSize
	}
	if query.AdditionalFilters == nil {
		query.AdditionalFilters = []catalog.AdditionalFilter{}
	}
	u := fmt.Sprintf("%s/Collection/%d/GetProductsForConstants", c.opts.BaseURL, collectionID)
	if params := query.Params(); len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	op := fmt.Sprintf("products for collection %d", collectionID)
	var res productsResponse
	err := client.DoJSON(ctx, c.hc, client.Request{
		Op:     op,
		Method: http.MethodPost,
		URL:    u,
		Token:  token,
		Body:   query,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		return nil, &client.FetchError{Op: op, Err: fmt.Errorf("response status %d", res.Status)}
	}

	products := make([]catalog.Product, 0, len(res.Data.Data))
	for i, p := range res.Data.Data {
		products = append(products, catalog.Product{
			ID:          catalog.SyntheticID(p.ProductCode, i),
			ImageURL:    p.ImageURL,
			Name:        catalog.DisplayName(p.Name),
			ProductCode: p.ProductCode,
			Price:       p.Price,
		})
	}
	return products, nil
}

type filtersResponse struct {
	Status int              `json:"status"`
	Data   []catalog.Filter `json:"data"`
}

// GetFiltersForConstants returns the filter options for a collection with the
// warehouse filter guaranteed present. Results are cached per collection and
// bearer token, so a token never reads another session's answer.
func (c *Client) GetFiltersForConstants(ctx context.Context, token string, collectionID int) ([]catalog.Filter, error) {
	key := fmt.Sprintf("maestro:filters:%d:%s", collectionID, tokenKey(token))
	raw, err := cache.Remember(ctx, c.opts.Cache, key, c.opts.CacheTTL, []string{cache.TagCatalog},
		func(ctx context.Context) ([]catalog.Filter, error) {
			return c.fetchFilters(ctx, token, collectionID)
		})
	if err != nil {
		return nil, err
	}
	return filters.EnsureWarehouse(raw, c.opts.WarehouseOverride), nil
}

// tokenKey keeps raw bearer tokens out of cache keys.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

func (c *Client) fetchFilters(ctx context.Context, token string, collectionID int) ([]catalog.Filter, error) {
	op := fmt.Sprintf("filters for collection %d", collectionID)
	var res filtersResponse
	err := client.DoJSON(ctx, c.hc, client.Request{
		Op:    op,
		URL:   fmt.Sprintf("%s/Collection/%d/GetFiltersForConstants", c.opts.BaseURL, collectionID),
		Token: token,
	}, &res)
	if err != nil {
		return nil, err
	}
	if res.Status != http.StatusOK {
		return nil, &client.FetchError{Op: op, Err: fmt.Errorf("response status %d", res.Status)}
	}
	if res.Data == nil {
		res.Data = []catalog.Filter{}
	}
	return res.Data, nil
}

// CollectionCatalog binds the client to one collection.
type CollectionCatalog struct {
	Client       *Client
	CollectionID int
}

func (cc CollectionCatalog) Products(ctx context.Context, token string, q filters.Query) ([]catalog.Product, error) {
	return cc.Client.GetProductsForConstants(ctx, token, cc.CollectionID, q)
}

func (cc CollectionCatalog) Filters(ctx context.Context, token string) ([]catalog.Filter, error) {
	return cc.Client.GetFiltersForConstants(ctx, token, cc.CollectionID)
}
