package editor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.GO/model/catalog"
	"dashboard.GO/service/filters"
	"dashboard.GO/service/grid"
)

type fakeCatalog struct {
	mu         sync.Mutex
	products   []catalog.Product
	filtered   []catalog.Product
	options    []catalog.Filter
	productErr error
	filterErr  error
	queries    []filters.Query
	// block, when set, holds Products until released.
	block chan struct{}
}

func (f *fakeCatalog) Products(ctx context.Context, _ string, q filters.Query) ([]catalog.Product, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.productErr != nil {
		return nil, f.productErr
	}
	if len(q.AdditionalFilters) > 0 && f.filtered != nil {
		return f.filtered, nil
	}
	return f.products, nil
}

func (f *fakeCatalog) Filters(context.Context, string) ([]catalog.Filter, error) {
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	return f.options, nil
}

func products(ids ...string) []catalog.Product {
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog.Product{ID: id, Name: id, ProductCode: id})
	}
	return out
}

func selectedIDs(e *Editor) []string {
	sel, _ := e.Selected()
	ids := make([]string, 0, len(sel))
	for _, p := range sel {
		ids = append(ids, p.ID)
	}
	return ids
}

func loaded(t *testing.T, c *fakeCatalog) *Editor {
	t.Helper()
	e := New(c, 72)
	require.NoError(t, e.Load(context.Background(), "tok"))
	return e
}

func TestLoad(t *testing.T) {
	c := &fakeCatalog{
		products: products("a-0", "b-1"),
		options:  []catalog.Filter{{ID: "color", Title: "Renk"}},
	}
	e := loaded(t, c)

	st := e.Snapshot()
	assert.True(t, st.Loaded)
	assert.Len(t, st.Products, 2)
	assert.Len(t, st.Filters, 1)
	assert.Equal(t, grid.Layout3x2, st.Grid.Layout)
	assert.Equal(t, 6, st.TotalSlots)
	assert.Len(t, st.Slots, 6)
}

func TestLoad_EitherFailureAppliesNothing(t *testing.T) {
	boom := errors.New("boom")
	for name, c := range map[string]*fakeCatalog{
		"products": {productErr: boom, options: []catalog.Filter{{ID: "x"}}},
		"filters":  {products: products("a-0"), filterErr: boom},
	} {
		t.Run(name, func(t *testing.T) {
			e := New(c, 72)
			err := e.Load(context.Background(), "tok")
			assert.ErrorIs(t, err, boom)
			st := e.Snapshot()
			assert.False(t, st.Loaded)
			assert.Empty(t, st.Products)
			assert.Empty(t, st.Filters)
		})
	}
}

func TestLoad_StaleAfterReset(t *testing.T) {
	c := &fakeCatalog{products: products("a-0"), block: make(chan struct{})}
	e := New(c, 72)

	done := make(chan error, 1)
	go func() { done <- e.Load(context.Background(), "tok") }()

	// Wait until the fetch is in flight, then reset.
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.queries) == 1
	}, timeout, tick)
	e.Reset()
	close(c.block)

	assert.ErrorIs(t, <-done, ErrStale)
	assert.False(t, e.Loaded())
}

func TestLoad_StaleAfterClose(t *testing.T) {
	c := &fakeCatalog{products: products("a-0"), block: make(chan struct{})}
	e := New(c, 72)

	done := make(chan error, 1)
	go func() { done <- e.Load(context.Background(), "tok") }()
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.queries) == 1
	}, timeout, tick)
	e.Close()
	close(c.block)

	assert.ErrorIs(t, <-done, ErrStale)
}

func TestAddAssignRemove(t *testing.T) {
	e := loaded(t, &fakeCatalog{products: products("a-0", "b-1", "c-2")})

	require.NoError(t, e.Add("a-0"))
	require.NoError(t, e.Add("a-0"))
	require.NoError(t, e.Assign("b-1", 0))
	require.NoError(t, e.Assign("c-2", 5))
	assert.Equal(t, []string{"b-1", "c-2"}, selectedIDs(e))

	// Moving a pinned product never duplicates it.
	require.NoError(t, e.Assign("c-2", 0))
	assert.Equal(t, []string{"c-2"}, selectedIDs(e))

	e.Remove("c-2")
	assert.Empty(t, selectedIDs(e))

	assert.ErrorIs(t, e.Add("zzz"), ErrUnknownProduct)
	assert.ErrorIs(t, e.Assign("zzz", 1), ErrUnknownProduct)
}

func TestSnapshot_GridTracksSelection(t *testing.T) {
	ids := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6"}
	e := loaded(t, &fakeCatalog{products: products(ids...)})
	for _, id := range ids {
		require.NoError(t, e.Add(id))
	}

	st := e.Snapshot()
	assert.Equal(t, 15, st.TotalSlots)
	require.Len(t, st.Slots, 15)
	assert.Equal(t, "p6", st.Slots[6].ID)
	assert.Nil(t, st.Slots[7])

	assert.Equal(t, grid.Layout4x4, e.SetLayout("4x4"))
	st = e.Snapshot()
	assert.Equal(t, 16, st.TotalSlots)

	assert.Equal(t, grid.Layout3x2, e.SetLayout("9x9"))
}

func TestApplyFilters(t *testing.T) {
	c := &fakeCatalog{
		products: products("a-0", "b-1"),
		filtered: products("b-0"),
		options: []catalog.Filter{{ID: "color", Title: "Renk", Values: []catalog.FilterValue{
			{Value: "red"}, {Value: "blue"},
		}}},
	}
	e := loaded(t, c)

	err := e.ApplyFilters(context.Background(), "tok", filters.Applied{"color": {"red", "blue"}, "minStock": {"5"}})
	require.NoError(t, err)

	last := c.queries[len(c.queries)-1]
	assert.Equal(t, FilterPageSize, last.PageSize)
	assert.Equal(t, "5", last.MinStock)
	want := []catalog.AdditionalFilter{
		{ID: "color", Value: "red"},
		{ID: "color", Value: "blue"},
	}
	if diff := cmp.Diff(want, last.AdditionalFilters); diff != "" {
		t.Errorf("additional filters (-want +got):\n%s", diff)
	}

	st := e.Snapshot()
	assert.Len(t, st.Products, 1)
	assert.Len(t, st.Chips, 3)

	require.NoError(t, e.RemoveFilter(context.Background(), "tok", "minStock", "5"))
	assert.Len(t, e.Snapshot().Chips, 2)

	e.ClearFilters()
	st = e.Snapshot()
	assert.Len(t, st.Products, 2)
	assert.Empty(t, st.Chips)
}

func TestApplyFilters_FailureFallsBack(t *testing.T) {
	c := &fakeCatalog{products: products("a-0", "b-1")}
	e := loaded(t, c)
	c.productErr = errors.New("upstream down")

	require.NoError(t, e.ApplyFilters(context.Background(), "tok", filters.Applied{"color": {"red"}}))
	st := e.Snapshot()
	assert.Len(t, st.Products, 2)
	assert.Equal(t, "upstream down", st.FilterError)
}

func TestReset(t *testing.T) {
	e := loaded(t, &fakeCatalog{products: products("a-0")})
	require.NoError(t, e.Add("a-0"))
	e.SetLayout("2x2")
	e.Reset()

	st := e.Snapshot()
	assert.Empty(t, st.Selected)
	assert.Equal(t, grid.DefaultLayout, st.Grid.Layout)
	assert.True(t, st.Loaded)
}

func TestRestore(t *testing.T) {
	e := New(&fakeCatalog{}, 72)
	e.Restore(products("x-0", "y-1", "x-0"), "4x4")

	sel, layout := e.Selected()
	assert.Len(t, sel, 2)
	assert.Equal(t, grid.Layout4x4, layout)
	// Restored products can be moved even before a load.
	require.NoError(t, e.Assign("y-1", 0))
	assert.Equal(t, []string{"y-1"}, selectedIDs(e))
}

// gatedCatalog answers filtered queries per filter value, each held until its
// gate is closed.
type gatedCatalog struct {
	fakeCatalog
	gates   map[string]chan struct{}
	started chan string
}

func (g *gatedCatalog) Products(ctx context.Context, token string, q filters.Query) ([]catalog.Product, error) {
	if len(q.AdditionalFilters) == 0 {
		return g.fakeCatalog.Products(ctx, token, q)
	}
	v := q.AdditionalFilters[0].Value
	g.started <- v
	<-g.gates[v]
	return products(v + "-0"), nil
}

func TestApplyFilters_OlderQueryCannotOverwriteNewer(t *testing.T) {
	c := &gatedCatalog{
		fakeCatalog: fakeCatalog{products: products("a-0", "b-1")},
		gates:       map[string]chan struct{}{"red": make(chan struct{}), "blue": make(chan struct{})},
		started:     make(chan string, 2),
	}
	e := New(c, 72)
	require.NoError(t, e.Load(context.Background(), "tok"))

	redDone := make(chan error, 1)
	go func() {
		redDone <- e.ApplyFilters(context.Background(), "tok", filters.Applied{"color": {"red"}})
	}()
	require.Equal(t, "red", <-c.started)

	blueDone := make(chan error, 1)
	go func() {
		blueDone <- e.ApplyFilters(context.Background(), "tok", filters.Applied{"color": {"blue"}})
	}()
	require.Equal(t, "blue", <-c.started)
	close(c.gates["blue"])
	require.NoError(t, <-blueDone)

	close(c.gates["red"])
	assert.ErrorIs(t, <-redDone, ErrStale)

	st := e.Snapshot()
	assert.Equal(t, filters.Applied{"color": {"blue"}}, st.Applied)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "blue-0", st.Products[0].ID)
}

func TestClearFilters_DiscardsInFlightQuery(t *testing.T) {
	c := &gatedCatalog{
		fakeCatalog: fakeCatalog{products: products("a-0", "b-1")},
		gates:       map[string]chan struct{}{"red": make(chan struct{})},
		started:     make(chan string, 1),
	}
	e := New(c, 72)
	require.NoError(t, e.Load(context.Background(), "tok"))

	done := make(chan error, 1)
	go func() {
		done <- e.ApplyFilters(context.Background(), "tok", filters.Applied{"color": {"red"}})
	}()
	require.Equal(t, "red", <-c.started)
	e.ClearFilters()
	close(c.gates["red"])

	assert.ErrorIs(t, <-done, ErrStale)
	assert.Len(t, e.Snapshot().Products, 2)
}
