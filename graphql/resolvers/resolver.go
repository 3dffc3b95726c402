package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	gqlmodels "dashboard.GO/graphql/models"
	"dashboard.GO/model/catalog"
	entity "dashboard.GO/model/entity"
	pinnedRepo "dashboard.GO/model/repository/pinned"
	"dashboard.GO/service/filters"
	"dashboard.GO/service/grid"
)

// PinnedStore reads saved pinned layouts.
type PinnedStore interface {
	Find(collectionID int) (*entity.PinnedLayout, []catalog.Product, error)
	All() ([]entity.PinnedLayout, error)
}

// Resolver answers the read-only dashboard queries.
type Resolver struct {
	pinned PinnedStore
}

func NewResolver(pinned PinnedStore) *Resolver {
	return &Resolver{pinned: pinned}
}

// GridConfig resolves a layout name; unknown names use the default layout.
func (r *Resolver) GridConfig(layout string, selected int) *gqlmodels.GridConfig {
	l, _ := grid.ParseLayout(layout)
	return gqlmodels.MapGrid(grid.ForLayout(l), selected)
}

// Layouts lists every layout at zero selection.
func (r *Resolver) Layouts() []*gqlmodels.GridConfig {
	out := make([]*gqlmodels.GridConfig, 0, len(grid.Layouts))
	for _, l := range grid.Layouts {
		out = append(out, gqlmodels.MapGrid(grid.ForLayout(l), 0))
	}
	return out
}

// PinnedLayout returns nil when the collection has no saved layout.
func (r *Resolver) PinnedLayout(ctx context.Context, collectionID int) (*gqlmodels.PinnedLayout, error) {
	row, products, err := r.pinned.Find(collectionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return gqlmodels.MapPinned(*row, products), nil
}

func (r *Resolver) PinnedLayouts(ctx context.Context) ([]*gqlmodels.PinnedLayout, error) {
	rows, err := r.pinned.All()
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.PinnedLayout, 0, len(rows))
	for _, row := range rows {
		products, err := pinnedRepo.Decode(row)
		if err != nil {
			return nil, err
		}
		out = append(out, gqlmodels.MapPinned(row, products))
	}
	return out, nil
}

func (r *Resolver) SortOptions() []*gqlmodels.SortOption {
	return gqlmodels.MapSortOptions(filters.SortOptions)
}
