package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.GO/model/catalog"
)

func TestCompose_ReservedKeysSeparate(t *testing.T) {
	applied := Applied{
		"color":    {"red", "blue"},
		"minStock": {"5"},
	}
	q := Compose(applied, 1, 50)

	assert.Equal(t, []catalog.AdditionalFilter{
		{ID: "color", Value: "red", ComparisonType: 0},
		{ID: "color", Value: "blue", ComparisonType: 0},
	}, q.AdditionalFilters)
	assert.Equal(t, "5", q.MinStock)
	assert.Equal(t, map[string]string{"minStock": "5"}, q.Params())
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 50, q.PageSize)
}

func TestCompose_AllReserved(t *testing.T) {
	q := Compose(Applied{
		"maxStock":    {"10"},
		"productCode": {"ABC"},
		"sortBy":      {"name_asc"},
	}, 1, 20)
	assert.Empty(t, q.AdditionalFilters)
	assert.NotNil(t, q.AdditionalFilters)
	assert.Equal(t, map[string]string{"maxStock": "10", "productCode": "ABC", "sortBy": "name_asc"}, q.Params())
}

func TestCompose_DeterministicOrder(t *testing.T) {
	applied := Applied{"size": {"M"}, "color": {"red"}, "brand": {"x"}}
	q := Compose(applied, 1, 10)
	require.Len(t, q.AdditionalFilters, 3)
	assert.Equal(t, "brand", q.AdditionalFilters[0].ID)
	assert.Equal(t, "color", q.AdditionalFilters[1].ID)
	assert.Equal(t, "size", q.AdditionalFilters[2].ID)
}

func TestApplied_ToggleRemove(t *testing.T) {
	a := Applied{}
	a.Toggle("color", "red")
	a.Toggle("color", "blue")
	assert.Equal(t, []string{"red", "blue"}, a["color"])

	a.Toggle("color", "red")
	assert.Equal(t, []string{"blue"}, a["color"])

	a.Remove("color", "blue")
	assert.True(t, a.Empty())
	a.Remove("missing", "x")
	assert.True(t, a.Empty())
}

func TestApplied_CloneSkipsBlank(t *testing.T) {
	a := Applied{"color": {"red", ""}, "size": {""}}
	c := a.Clone()
	assert.Equal(t, Applied{"color": {"red"}}, c)
	c["color"][0] = "green"
	assert.Equal(t, "red", a["color"][0])
}

func TestApplied_Chips(t *testing.T) {
	red := "Kırmızı"
	available := []catalog.Filter{{
		ID:     "color",
		Title:  "Renk",
		Values: []catalog.FilterValue{{Value: "red", ValueName: &red}, {Value: "blue"}},
	}}
	chips := Applied{"color": {"red", "blue"}, "size": {"M"}}.Chips(available)
	assert.Equal(t, []Chip{
		{FilterID: "color", Value: "red", Label: "Renk: Kırmızı"},
		{FilterID: "color", Value: "blue", Label: "Renk: blue"},
		{FilterID: "size", Value: "M", Label: "size: M"},
	}, chips)
}

func TestEnsureWarehouse_AddsWhenMissing(t *testing.T) {
	in := []catalog.Filter{{ID: "color", Title: "Renk"}}
	out := EnsureWarehouse(in, false)
	require.Len(t, out, 2)
	assert.Len(t, in, 1)
	wh := catalog.FindFilter(out, WarehouseID)
	require.NotNil(t, wh)
	assert.Len(t, wh.Values, 26)
}

func TestEnsureWarehouse_Override(t *testing.T) {
	in := []catalog.Filter{{ID: WarehouseID, Values: []catalog.FilterValue{{Value: "SRV"}}}}

	kept := EnsureWarehouse(in, false)
	assert.Equal(t, "SRV", kept[0].Values[0].Value)

	replaced := EnsureWarehouse(in, true)
	assert.Len(t, replaced[0].Values, 26)
	assert.Equal(t, "SRV", in[0].Values[0].Value)
}

func TestEnsureWarehouse_EmptyServerValuesFilled(t *testing.T) {
	out := EnsureWarehouse([]catalog.Filter{{ID: WarehouseID}}, false)
	assert.Len(t, out[0].Values, 26)
}

func TestWarehouseValues_UniqueCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range WarehouseValues() {
		assert.False(t, seen[v.Value], v.Value)
		seen[v.Value] = true
	}
}
