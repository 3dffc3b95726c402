package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Item is the subset of a demo-store product the browser filters on.
type Item interface {
	ItemTitle() string
	ItemCategory() string
	ItemPrice() float64
}

// Criteria narrows the product browser. Zero fields do not filter.
type Criteria struct {
	Category string   `json:"category,omitempty"`
	Search   string   `json:"search,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

// ParseCriteria builds Criteria from raw form values. Blank, unparseable or
// non-finite prices are treated as absent.
func ParseCriteria(category, search, minPrice, maxPrice string) Criteria {
	return Criteria{
		Category: strings.TrimSpace(category),
		Search:   search,
		MinPrice: parsePrice(minPrice),
		MaxPrice: parsePrice(maxPrice),
	}
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Category == "" && c.Search == "" && c.MinPrice == nil && c.MaxPrice == nil
}

func (c Criteria) Match(it Item) bool {
	if c.Category != "" && it.ItemCategory() != c.Category {
		return false
	}
	if c.Search != "" && !strings.Contains(strings.ToLower(it.ItemTitle()), strings.ToLower(c.Search)) {
		return false
	}
	if c.MinPrice != nil && it.ItemPrice() < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && it.ItemPrice() > *c.MaxPrice {
		return false
	}
	return true
}

// Apply returns the items matching c, preserving order.
func Apply[T Item](items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if c.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
