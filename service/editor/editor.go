// Package editor orchestrates one pinned-grid edit view: the products and
// filters loaded from a catalog, the applied filters, the layout and the
// selection being curated.
//
// Every editor carries a generation counter. Reset and Close bump it, and a
// fetch that started under an older generation is discarded with ErrStale
// instead of overwriting state the user has already left. Filter queries
// are also sequenced: only the result of the latest filter change is kept.
package editor

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"dashboard.GO/model/catalog"
	"dashboard.GO/service/filters"
	"dashboard.GO/service/grid"
	"dashboard.GO/service/selection"
)

const (
	// FilterPageSize is the page size of a filtered product query.
	FilterPageSize = 50
	firstPage      = 1
)

var (
	ErrStale          = errors.New("editor: result discarded, superseded by a newer change")
	ErrUnknownProduct = errors.New("editor: unknown product")
)

// Catalog supplies products and filter options for one collection.
type Catalog interface {
	Products(ctx context.Context, token string, q filters.Query) ([]catalog.Product, error)
	Filters(ctx context.Context, token string) ([]catalog.Filter, error)
}

type Editor struct {
	mu sync.Mutex

	catalog      Catalog
	collectionID int

	selection *selection.Selection
	layout    grid.Layout
	applied   filters.Applied

	available   []catalog.Product
	filtered    []catalog.Product
	filters     []catalog.Filter
	filterError string
	loaded      bool

	gen       uint64
	filterSeq uint64
	closed    bool
}

func New(c Catalog, collectionID int) *Editor {
	return &Editor{
		catalog:      c,
		collectionID: collectionID,
		selection:    selection.New(),
		layout:       grid.DefaultLayout,
		applied:      filters.Applied{},
	}
}

func (e *Editor) CollectionID() int {
	return e.collectionID
}

func (e *Editor) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Load fetches the first product page and the filter options concurrently.
// Both must succeed; on any failure nothing is applied.
func (e *Editor) Load(ctx context.Context, token string) error {
	gen := e.generation()

	var (
		products []catalog.Product
		options  []catalog.Filter
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = e.catalog.Products(gctx, token, filters.Compose(nil, firstPage, 0))
		return err
	})
	g.Go(func() error {
		var err error
		options, err = e.catalog.Filters(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale(gen) {
		return ErrStale
	}
	e.available = products
	e.filtered = products
	e.filters = options
	e.filterError = ""
	e.loaded = true
	return nil
}

// ApplyFilters replaces the applied filters and re-queries the catalog. A failed
// query falls back to the loaded product list and is reported in the snapshot.
func (e *Editor) ApplyFilters(ctx context.Context, token string, applied filters.Applied) error {
	e.mu.Lock()
	e.applied = applied.Clone()
	e.filterSeq++
	e.mu.Unlock()
	return e.refilter(ctx, token)
}

// RemoveFilter deselects one applied value and re-queries.
func (e *Editor) RemoveFilter(ctx context.Context, token, id, value string) error {
	e.mu.Lock()
	e.applied.Remove(id, value)
	e.filterSeq++
	e.mu.Unlock()
	return e.refilter(ctx, token)
}

// ClearFilters drops every applied filter and restores the loaded list.
func (e *Editor) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.applied.Clear()
	e.filterSeq++
	e.filtered = e.available
	e.filterError = ""
}

func (e *Editor) refilter(ctx context.Context, token string) error {
	e.mu.Lock()
	gen, seq := e.gen, e.filterSeq
	if e.applied.Empty() {
		e.filtered = e.available
		e.filterError = ""
		e.mu.Unlock()
		return nil
	}
	q := filters.Compose(e.applied, firstPage, FilterPageSize)
	e.mu.Unlock()

	products, err := e.catalog.Products(ctx, token, q)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stale(gen) || seq != e.filterSeq {
		return ErrStale
	}
	if err != nil {
		e.filtered = e.available
		e.filterError = err.Error()
		return nil
	}
	e.filtered = products
	e.filterError = ""
	return nil
}

// Add pins the product with id.
func (e *Editor) Add(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.lookup(id)
	if !ok {
		return ErrUnknownProduct
	}
	e.selection.Add(p)
	return nil
}

// Remove unpins id. Unknown ids are a no-op.
func (e *Editor) Remove(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.Remove(id)
}

// Assign completes a drop of the product with id onto slot.
func (e *Editor) Assign(id string, slot int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.lookup(id)
	if !ok {
		return ErrUnknownProduct
	}
	e.selection.AssignToSlot(p, slot)
	return nil
}

// SetLayout switches the grid shape; unknown names select the default.
func (e *Editor) SetLayout(name string) grid.Layout {
	l, _ := grid.ParseLayout(name)
	e.mu.Lock()
	e.layout = l
	e.mu.Unlock()
	return l
}

// Reset discards the selection and applied filters. In-flight fetches become stale.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.selection.Reset()
	e.applied.Clear()
	e.layout = grid.DefaultLayout
	e.filtered = e.available
	e.filterError = ""
}

// Restore replaces the selection and layout with a saved arrangement.
func (e *Editor) Restore(products []catalog.Product, layout string) {
	l, _ := grid.ParseLayout(layout)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = selection.From(products)
	e.layout = l
}

// Close retires the editor; every later fetch result is stale.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.closed = true
}

// Selected returns the pinned products in slot order.
func (e *Editor) Selected() ([]catalog.Product, grid.Layout) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.Products(), e.layout
}

// State is a render-ready view of an editor.
type State struct {
	CollectionID int                `json:"collectionId"`
	Loaded       bool               `json:"loaded"`
	Grid         grid.Config        `json:"grid"`
	TotalSlots   int                `json:"totalSlots"`
	Slots        []*catalog.Product `json:"slots"`
	Selected     []catalog.Product  `json:"selected"`
	Products     []catalog.Product  `json:"products"`
	Filters      []catalog.Filter   `json:"filters"`
	Applied      filters.Applied    `json:"applied"`
	Chips        []filters.Chip     `json:"chips"`
	FilterError  string             `json:"filterError,omitempty"`
}

// Snapshot recomputes the grid for the current layout and selection size.
func (e *Editor) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := grid.ForLayout(e.layout)
	total := cfg.TotalSlots(e.selection.Len())
	return State{
		CollectionID: e.collectionID,
		Loaded:       e.loaded,
		Grid:         cfg,
		TotalSlots:   total,
		Slots:        e.selection.Slots(total),
		Selected:     e.selection.Products(),
		Products:     nonNil(e.filtered),
		Filters:      e.filters,
		Applied:      e.applied.Clone(),
		Chips:        e.applied.Chips(e.filters),
		FilterError:  e.filterError,
	}
}

func (e *Editor) generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen
}

func (e *Editor) stale(gen uint64) bool {
	return e.closed || e.gen != gen
}

// lookup finds id among the visible, loaded and already pinned products.
func (e *Editor) lookup(id string) (catalog.Product, bool) {
	for _, list := range [][]catalog.Product{e.filtered, e.available, e.selection.Products()} {
		for _, p := range list {
			if p.ID == id {
				return p, true
			}
		}
	}
	return catalog.Product{}, false
}

func nonNil(p []catalog.Product) []catalog.Product {
	if p == nil {
		return []catalog.Product{}
	}
	return p
}
