package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.GO/client/fakestore"
)

type recordingCreator struct {
	got fakestore.CreateCartRequest
	err error
	// during runs while the request is in flight.
	during func()
}

func (r *recordingCreator) CreateCart(_ context.Context, req fakestore.CreateCartRequest) (*fakestore.Cart, error) {
	r.got = req
	if r.during != nil {
		r.during()
	}
	if r.err != nil {
		return nil, r.err
	}
	return &fakestore.Cart{ID: 99, UserID: req.UserID, Products: req.Products}, nil
}

func TestAdd_IncrementsExisting(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1, Title: "Shoe", Price: 20}, 1)
	c.Add(Item{ProductID: 1, Title: "Shoe", Price: 20}, 2)
	c.Add(Item{ProductID: 2, Title: "Hat", Price: 5}, 0)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.InDelta(t, 65.0, c.Total(), 1e-9)
}

func TestUpdateQuantity(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1}, 1)
	c.Add(Item{ProductID: 2}, 1)

	c.UpdateQuantity(1, 4)
	assert.Equal(t, 4, c.Items()[0].Quantity)

	c.UpdateQuantity(1, 0)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 2, c.Items()[0].ProductID)

	c.UpdateQuantity(42, 3)
	assert.Len(t, c.Items(), 1)
}

func TestRemoveAndClear(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1}, 1)
	c.Add(Item{ProductID: 2}, 1)
	c.Remove(1)
	assert.Len(t, c.Items(), 1)
	c.Clear()
	assert.Empty(t, c.Items())
}

func TestCheckout(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1}, 2)
	rc := &recordingCreator{}

	created, err := c.Checkout(context.Background(), rc, 3, time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 99, created.ID)
	assert.Equal(t, "2024-05-01", rc.got.Date)
	assert.Equal(t, []fakestore.CartItem{{ProductID: 1, Quantity: 2}}, rc.got.Products)
	assert.Empty(t, c.Items())
}

func TestCheckout_KeepsItemsAddedInFlight(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1}, 2)
	rc := &recordingCreator{during: func() {
		c.Add(Item{ProductID: 1}, 1)
		c.Add(Item{ProductID: 2}, 1)
	}}

	_, err := c.Checkout(context.Background(), rc, 3, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []fakestore.CartItem{{ProductID: 1, Quantity: 2}}, rc.got.Products)
	assert.Equal(t, []Item{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 1}}, c.Items())
}

func TestCheckout_FailureKeepsCart(t *testing.T) {
	var c Cart
	c.Add(Item{ProductID: 1}, 1)
	_, err := c.Checkout(context.Background(), &recordingCreator{err: errors.New("down")}, 3, time.Now())
	assert.Error(t, err)
	assert.Len(t, c.Items(), 1)

	var empty Cart
	_, err = empty.Checkout(context.Background(), &recordingCreator{}, 3, time.Now())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestStore(t *testing.T) {
	s := NewStore()
	a := s.Get("s1")
	assert.Same(t, a, s.Get("s1"))
	s.Drop("s1")
	assert.NotSame(t, a, s.Get("s1"))
}
