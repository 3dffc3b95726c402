package filters

import "dashboard.GO/model/catalog"

// Reserved keys travel as their own query parameters, never as filter triples.
const (
	KeyMinStock    = "minStock"
	KeyMaxStock    = "maxStock"
	KeyProductCode = "productCode"
	KeySortBy      = "sortBy"
)

func reserved(key string) bool {
	switch key {
	case KeyMinStock, KeyMaxStock, KeyProductCode, KeySortBy:
		return true
	}
	return false
}

// Query is a composed product query for the catalog collaborator.
type Query struct {
	AdditionalFilters []catalog.AdditionalFilter `json:"additionalFilters"`
	Page              int                        `json:"page"`
	PageSize          int                        `json:"pageSize"`

	MinStock    string `json:"-"`
	MaxStock    string `json:"-"`
	ProductCode string `json:"-"`
	SortBy      string `json:"-"`
}

// Compose flattens applied into one triple per selected value. Reserved keys
// take their first value.
func Compose(applied Applied, page, pageSize int) Query {
	q := Query{
		AdditionalFilters: []catalog.AdditionalFilter{},
		Page:              page,
		PageSize:          pageSize,
	}
	for _, id := range applied.Keys() {
		vals := applied[id]
		if reserved(id) {
			if len(vals) > 0 {
				q.setReserved(id, vals[0])
			}
			continue
		}
		for _, v := range vals {
			q.AdditionalFilters = append(q.AdditionalFilters, catalog.AdditionalFilter{
				ID:             id,
				Value:          v,
				ComparisonType: 0,
			})
		}
	}
	return q
}

func (q *Query) setReserved(key, value string) {
	switch key {
	case KeyMinStock:
		q.MinStock = value
	case KeyMaxStock:
		q.MaxStock = value
	case KeyProductCode:
		q.ProductCode = value
	case KeySortBy:
		q.SortBy = value
	}
}

// Params returns the reserved keys that are set, keyed by their wire name.
func (q Query) Params() map[string]string {
	out := map[string]string{}
	for k, v := range map[string]string{
		KeyMinStock:    q.MinStock,
		KeyMaxStock:    q.MaxStock,
		KeyProductCode: q.ProductCode,
		KeySortBy:      q.SortBy,
	} {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// SortOption is a selectable sort order.
type SortOption struct {
	Value string
	Label string
}

var SortOptions = []SortOption{
	{"name_asc", "İsim A-Z"},
	{"name_desc", "İsim Z-A"},
	{"code_asc", "Kod A-Z"},
	{"code_desc", "Kod Z-A"},
	{"stock_asc", "Stok Azdan Çoka"},
	{"stock_desc", "Stok Çoktan Aza"},
}
