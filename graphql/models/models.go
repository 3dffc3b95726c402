package models

import (
	"time"

	"dashboard.GO/model/catalog"
	entity "dashboard.GO/model/entity"
	"dashboard.GO/service/filters"
	"dashboard.GO/service/grid"
)

// --- Grid ---

type GridConfig struct {
	Layout        string `json:"layout"`
	Cols          int32  `json:"cols"`
	MinRows       int32  `json:"minRows"`
	GridClassName string `json:"gridClassName"`
	FixedSlots    int32  `json:"fixedSlots"`
	TotalSlots    int32  `json:"totalSlots"`
}

// MapGrid converts a grid config with selected pinned products.
func MapGrid(cfg grid.Config, selected int) *GridConfig {
	return &GridConfig{
		Layout:        string(cfg.Layout),
		Cols:          int32(cfg.Cols),
		MinRows:       int32(cfg.MinRows),
		GridClassName: cfg.GridClassName,
		FixedSlots:    int32(cfg.FixedSlots),
		TotalSlots:    int32(cfg.TotalSlots(selected)),
	}
}

// --- Pinned layouts ---

type Product struct {
	ID          string   `json:"id"`
	ImageURL    string   `json:"imageUrl"`
	Name        string   `json:"name"`
	ProductCode string   `json:"productCode"`
	Price       *float64 `json:"price,omitempty"`
}

type PinnedLayout struct {
	CollectionID int32       `json:"collectionId"`
	Layout       string      `json:"layout"`
	SavedBy      string      `json:"savedBy"`
	UpdatedAt    string      `json:"updatedAt"`
	Products     []*Product  `json:"products"`
	Grid         *GridConfig `json:"grid"`
}

func MapPinned(row entity.PinnedLayout, products []catalog.Product) *PinnedLayout {
	l, _ := grid.ParseLayout(row.Layout)
	out := &PinnedLayout{
		CollectionID: int32(row.CollectionID),
		Layout:       string(l),
		SavedBy:      row.SavedBy,
		UpdatedAt:    row.UpdatedAt.UTC().Format(time.RFC3339),
		Products:     make([]*Product, 0, len(products)),
		Grid:         MapGrid(grid.ForLayout(l), len(products)),
	}
	for _, p := range products {
		out.Products = append(out.Products, &Product{
			ID:          p.ID,
			ImageURL:    p.ImageURL,
			Name:        p.Name,
			ProductCode: p.ProductCode,
			Price:       p.Price,
		})
	}
	return out
}

// --- Misc ---

type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func MapSortOptions(opts []filters.SortOption) []*SortOption {
	out := make([]*SortOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, &SortOption{Value: o.Value, Label: o.Label})
	}
	return out
}

type Viewer struct {
	Username string `json:"username"`
	Variant  string `json:"variant"`
}
