package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.GO/client/fakestore"
	"dashboard.GO/model/catalog"
	"dashboard.GO/service/filters"
)

type demoStore struct{}

func (demoStore) Products(context.Context) ([]fakestore.Product, error) {
	return []fakestore.Product{
		{ID: 1, Title: "Red Shoe", Category: "shoes", Price: 20},
		{ID: 2, Title: "Blue Hat", Category: "hats", Price: 50},
		{ID: 3, Title: "Green Shoe", Category: "shoes", Price: 30},
	}, nil
}

func (demoStore) Categories(context.Context) ([]string, error) {
	return []string{"hats", "shoes"}, nil
}

func TestFakeStoreCatalog_Products(t *testing.T) {
	c := FakeStoreCatalog{Store: demoStore{}}

	all, err := c.Products(context.Background(), "", filters.Query{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	shoes, err := c.Products(context.Background(), "", filters.Compose(filters.Applied{"category": {"shoes"}}, 1, 50))
	require.NoError(t, err)
	require.Len(t, shoes, 2)
	assert.Equal(t, all[2].ID, shoes[1].ID)

	byCode, err := c.Products(context.Background(), "", filters.Compose(filters.Applied{"productCode": {"fs2"}}, 1, 50))
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, "Blue Hat", byCode[0].Name)
}

func TestFakeStoreCatalog_Filters(t *testing.T) {
	fs, err := FakeStoreCatalog{Store: demoStore{}}.Filters(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, catalog.FindFilter(fs, CategoryFilterID))
	assert.Len(t, catalog.FindFilter(fs, CategoryFilterID).Values, 2)
	assert.NotNil(t, catalog.FindFilter(fs, filters.WarehouseID))
}
