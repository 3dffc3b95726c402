package editor

import (
	"context"
	"strings"

	"dashboard.GO/client/fakestore"
	"dashboard.GO/model/catalog"
	"dashboard.GO/service/filters"
)

// CategoryFilterID is the only filter the demo store can honor.
const CategoryFilterID = "category"

// DemoStore is the part of the demo store client the sandbox needs.
type DemoStore interface {
	Products(ctx context.Context) ([]fakestore.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// FakeStoreCatalog serves the drag sandbox from the demo store. Category
// triples and the productCode key narrow the list locally; other filters are
// ignored. IDs use the position in the full list so they survive filtering.
type FakeStoreCatalog struct {
	Store DemoStore
}

func (f FakeStoreCatalog) Products(ctx context.Context, _ string, q filters.Query) ([]catalog.Product, error) {
	all, err := f.Store.Products(ctx)
	if err != nil {
		return nil, err
	}
	categories := map[string]bool{}
	for _, af := range q.AdditionalFilters {
		if af.ID == CategoryFilterID {
			categories[af.Value] = true
		}
	}

	out := make([]catalog.Product, 0, len(all))
	for i, p := range all {
		if len(categories) > 0 && !categories[p.Category] {
			continue
		}
		item := p.Pinnable(i)
		if q.ProductCode != "" && !strings.EqualFold(item.ProductCode, q.ProductCode) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f FakeStoreCatalog) Filters(ctx context.Context, _ string) ([]catalog.Filter, error) {
	cats, err := f.Store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	values := make([]catalog.FilterValue, 0, len(cats))
	for _, c := range cats {
		values = append(values, catalog.FilterValue{Value: c})
	}
	return filters.EnsureWarehouse([]catalog.Filter{{
		ID:     CategoryFilterID,
		Title:  "Kategori",
		Values: values,
	}}, true), nil
}
