package collection

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.GO/api"
	"dashboard.GO/api/apitest"
	entity "dashboard.GO/model/entity"
	"dashboard.GO/service/editor"
)

type fixture struct {
	d *api.Deps
	e *echo.Echo
	s *entity.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	up := apitest.Upstream(t)
	d := apitest.Deps(t, up.URL)
	e := apitest.Echo(d)
	RegisterCollectionRoutes(e.Group("/api"), d)
	return &fixture{d: d, e: e, s: apitest.Session(t, d)}
}

func (f *fixture) do(t *testing.T, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	rec := apitest.Request(f.e, method, target, body, f.s, f.d.Config.SessionCookie)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func (f *fixture) state(t *testing.T, method, target, body string) editor.State {
	t.Helper()
	rec := apitest.Request(f.e, method, target, body, f.s, f.d.Config.SessionCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st editor.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	return st
}

func TestList(t *testing.T) {
	f := newFixture(t)
	code, body := f.do(t, http.MethodGet, "/api/collections?page=1&pageSize=5", "")
	require.Equal(t, http.StatusOK, code)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "Yaz Koleksiyonu", first["title"])
	assert.Equal(t, "Satış Kanalı - 1", first["salesChannel"])
}

func TestList_RequiresSession(t *testing.T) {
	f := newFixture(t)
	rec := apitest.Request(f.e, http.MethodGet, "/api/collections", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEditor_Flow(t *testing.T) {
	f := newFixture(t)
	base := "/api/collections/72/editor"

	st := f.state(t, http.MethodGet, base, "")
	assert.True(t, st.Loaded)
	require.Len(t, st.Products, 3)
	assert.Equal(t, "AAA-0", st.Products[0].ID)
	assert.Equal(t, "AAA", st.Products[0].Name)
	assert.Equal(t, 6, st.TotalSlots)

	st = f.state(t, http.MethodPost, base+"/add", `{"productId":"AAA-0"}`)
	st = f.state(t, http.MethodPost, base+"/assign", `{"productId":"CCC-2","slot":0}`)
	require.Len(t, st.Selected, 1)
	assert.Equal(t, "CCC-2", st.Selected[0].ID)

	st = f.state(t, http.MethodPost, base+"/assign", `{"productId":"BBB-1","slot":4}`)
	require.Len(t, st.Selected, 2)
	assert.Equal(t, "BBB-1", st.Selected[1].ID)

	st = f.state(t, http.MethodPost, base+"/layout", `{"layout":"2x2"}`)
	assert.Equal(t, 2, st.Grid.Cols)
	assert.Equal(t, 6, st.TotalSlots)

	st = f.state(t, http.MethodPost, base+"/remove", `{"productId":"BBB-1"}`)
	assert.Len(t, st.Selected, 1)
}

func TestEditor_Filters(t *testing.T) {
	f := newFixture(t)
	base := "/api/collections/72/editor"

	st := f.state(t, http.MethodPost, base+"/filters", `{"filters":{"color":["1"],"minStock":["5"]}}`)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "BBB-0", st.Products[0].ID)
	assert.Len(t, st.Chips, 2)
	var hasWarehouse bool
	for _, fl := range st.Filters {
		hasWarehouse = hasWarehouse || fl.ID == "warehouse"
	}
	assert.True(t, hasWarehouse)

	st = f.state(t, http.MethodPost, base+"/filters/remove", `{"filterId":"minStock","value":"5"}`)
	assert.Len(t, st.Chips, 1)

	st = f.state(t, http.MethodPost, base+"/filters/clear", "")
	assert.Len(t, st.Products, 3)
	assert.Empty(t, st.Chips)
}

func TestEditor_UnknownProduct(t *testing.T) {
	f := newFixture(t)
	code, body := f.do(t, http.MethodPost, "/api/collections/72/editor/add", `{"productId":"nope"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body["error"], "unknown product")
}

func TestEditor_Validation(t *testing.T) {
	f := newFixture(t)
	rec := apitest.Request(f.e, http.MethodPost, "/api/collections/72/editor/assign", `{"productId":"AAA-0"}`, f.s, f.d.Config.SessionCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = apitest.Request(f.e, http.MethodGet, "/api/collections/abc/editor", "", f.s, f.d.Config.SessionCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditor_SaveAndRestore(t *testing.T) {
	f := newFixture(t)
	base := "/api/collections/72/editor"
	f.state(t, http.MethodPost, base+"/assign", `{"productId":"BBB-1","slot":0}`)
	f.state(t, http.MethodPost, base+"/layout", `{"layout":"4x4"}`)

	code, body := f.do(t, http.MethodPost, base+"/save", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["saved"])

	// A fresh session restores the saved arrangement.
	f.s = apitest.Session(t, f.d)
	st := f.state(t, http.MethodGet, base, "")
	require.Len(t, st.Selected, 1)
	assert.Equal(t, "BBB-1", st.Selected[0].ID)
	assert.Equal(t, 4, st.Grid.Cols)
}

func TestEditor_ResetClearsSelection(t *testing.T) {
	f := newFixture(t)
	base := "/api/collections/72/editor"
	f.state(t, http.MethodPost, base+"/add", `{"productId":"AAA-0"}`)
	st := f.state(t, http.MethodPost, base+"/reset", "")
	assert.Empty(t, st.Selected)
}

func TestEditor_Sandbox(t *testing.T) {
	f := newFixture(t)
	base := "/api/collections/0/editor"

	st := f.state(t, http.MethodGet, base, "")
	require.Len(t, st.Products, 2)
	st = f.state(t, http.MethodPost, base+"/assign", `{"productId":"`+st.Products[1].ID+`","slot":0}`)
	assert.Len(t, st.Selected, 1)

	code, _ := f.do(t, http.MethodPost, base+"/save", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestEditor_UpstreamUnauthorized(t *testing.T) {
	f := newFixture(t)
	f.s.AccessToken = "wrong"
	require.NoError(t, f.d.DB.Save(f.s).Error)

	code, _ := f.do(t, http.MethodGet, "/api/collections/72/editor", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}
