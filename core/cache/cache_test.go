package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	require.NotNil(t, inst)
	assert.Same(t, inst, GetInstance())
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 0, nil)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "val", got)
}

func TestGet_Expired(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", time.Nanosecond, nil)
	time.Sleep(2 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestGetOrDefault(t *testing.T) {
	c := NewCache()
	assert.Equal(t, "default", c.GetOrDefault("missing", "default"))
	c.Set("k", "stored", 0, nil)
	assert.Equal(t, "stored", c.GetOrDefault("k", "default"))
}

func TestDeleteMany(t *testing.T) {
	c := NewCache()
	c.Set("dm1", 1, 0, nil)
	c.Set("dm2", 2, 0, nil)
	c.DeleteMany("dm1", "dm2")
	_, ok1 := c.Get("dm1")
	_, ok2 := c.Get("dm2")
	assert.False(t, ok1)
	assert.False(t, ok2)
}

func TestDeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set("a", 1, 0, []string{"t1"})
	c.Set("b", 2, 0, []string{"t1", "t2"})
	c.Set("c", 3, 0, nil)

	assert.ElementsMatch(t, []string{"a", "b"}, c.GetKeysByTag("t1"))
	assert.Equal(t, 2, c.DeleteByTag("t1"))

	_, okA := c.Get("a")
	_, okC := c.Get("c")
	assert.False(t, okA)
	assert.True(t, okC)
	assert.Equal(t, 0, c.DeleteByTag("t1"))
}

func TestDelete_RemovesFromTagIndex(t *testing.T) {
	c := NewCache()
	c.Set("k", "v", 0, []string{"t"})
	c.Delete("k")
	assert.Empty(t, c.GetKeysByTag("t"))
}

func TestPurge(t *testing.T) {
	c := NewCache()
	c.Set("old", 1, time.Nanosecond, nil)
	c.Set("keep", 2, 0, nil)
	time.Sleep(2 * time.Millisecond)
	c.Purge()
	_, ok := c.m.Load("old")
	assert.False(t, ok)
	_, ok = c.Get("keep")
	assert.True(t, ok)
}

func TestNewStore_NilClientIsLocal(t *testing.T) {
	_, ok := NewStore(nil).(*Local)
	assert.True(t, ok)
}

func TestRemember_CachesOnce(t *testing.T) {
	s := NewLocal(NewCache())
	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"x", "y"}, nil
	}
	ctx := context.Background()

	first, err := Remember(ctx, s, "list", time.Minute, []string{TagCatalog}, fetch)
	require.NoError(t, err)
	second, err := Remember(ctx, s, "list", time.Minute, []string{TagCatalog}, fetch)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	require.NoError(t, s.Invalidate(ctx, TagCatalog))
	_, err = Remember(ctx, s, "list", time.Minute, nil, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemember_ErrorNotCached(t *testing.T) {
	s := NewLocal(NewCache())
	boom := errors.New("boom")
	_, err := Remember(context.Background(), s, "k", time.Minute, nil, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	_, ok, _ := s.Load(context.Background(), "k")
	assert.False(t, ok)
}

func TestFlush(t *testing.T) {
	c := NewCache()
	c.Set("a", 1, 0, []string{"t"})
	c.Set("b", 2, time.Minute, nil)
	c.Flush()
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Empty(t, c.GetKeysByTag("t"))
}
