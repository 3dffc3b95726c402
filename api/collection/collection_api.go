package collection

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dashboard.GO/api"
	"dashboard.GO/core/auth"
	"dashboard.GO/model/catalog"
	entity "dashboard.GO/model/entity"
	"dashboard.GO/service/editor"
	"dashboard.GO/service/filters"
)

func init() {
	api.RegisterModule(RegisterCollectionRoutes)
}

type productRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type assignRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Slot      *int   `json:"slot" validate:"required"`
}

type layoutRequest struct {
	Layout string `json:"layout" validate:"required"`
}

type filtersRequest struct {
	Filters map[string][]string `json:"filters"`
}

type removeFilterRequest struct {
	FilterID string `json:"filterId" validate:"required"`
	Value    string `json:"value" validate:"required"`
}

type handler struct {
	d *api.Deps
}

func RegisterCollectionRoutes(apiGroup *echo.Group, d *api.Deps) {
	h := &handler{d: d}
	g := apiGroup.Group("/collections")

	// GET /api/collections?page=&pageSize=
	g.GET("", h.list)

	ed := g.Group("/:id/editor")
	ed.GET("", h.state)
	ed.POST("/reload", h.reload)
	ed.POST("/add", h.add)
	ed.POST("/remove", h.remove)
	ed.POST("/assign", h.assign)
	ed.POST("/layout", h.layout)
	ed.POST("/filters", h.applyFilters)
	ed.POST("/filters/clear", h.clearFilters)
	ed.POST("/filters/remove", h.removeFilter)
	ed.POST("/reset", h.reset)
	ed.POST("/save", h.save)
}

func (h *handler) list(c echo.Context) error {
	s, _ := auth.CurrentSession(c)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	res, err := h.d.Maestro.GetCollections(c.Request().Context(), s.AccessToken, page, pageSize)
	if err != nil {
		return h.fail(c, err)
	}
	rows := make([]catalog.CollectionRow, 0, len(res.Data))
	for _, col := range res.Data {
		rows = append(rows, col.Row())
	}
	return c.JSON(http.StatusOK, echo.Map{"meta": res.Meta, "data": rows})
}

// editorFor resolves the session and editor named by the route.
func (h *handler) editorFor(c echo.Context) (*entity.Session, *editor.Editor, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return nil, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid collection id")
	}
	s, _ := auth.CurrentSession(c)
	ed, err := h.d.Editor(c.Request().Context(), s, id)
	if err != nil {
		return s, nil, err
	}
	return s, ed, nil
}

func (h *handler) state(c echo.Context) error {
	_, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) reload(c echo.Context) error {
	s, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := ed.Load(c.Request().Context(), s.AccessToken); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) add(c echo.Context) error {
	var req productRequest
	if err := api.BindValid(c, &req); err != nil {
		return err
	}
	_, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := ed.Add(req.ProductID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) remove(c echo.Context) error {
	var req productRequest
	if err := api.BindValid(c, &req); err != nil {
		return err
	}
	_, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	ed.Remove(req.ProductID)
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) assign(c echo.Context) error {
	var req assignRequest
	if err := api.BindValid(c, &req); err != nil {
		return err
	}
	_, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := ed.Assign(req.ProductID, *req.Slot); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) layout(c echo.Context) error {
	var req layoutRequest
	if err := api.BindValid(c, &req); err != nil {
		return err
	}
	_, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	ed.SetLayout(req.Layout)
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) applyFilters(c echo.Context) error {
	var req filtersRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	s, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := ed.ApplyFilters(c.Request().Context(), s.AccessToken, filters.Applied(req.Filters)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) clearFilters(c echo.Context) error {
	_, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	ed.ClearFilters()
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) removeFilter(c echo.Context) error {
	var req removeFilterRequest
	if err := api.BindValid(c, &req); err != nil {
		return err
	}
	s, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := ed.RemoveFilter(c.Request().Context(), s.AccessToken, req.FilterID, req.Value); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) reset(c echo.Context) error {
	_, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	ed.Reset()
	return c.JSON(http.StatusOK, ed.Snapshot())
}

func (h *handler) save(c echo.Context) error {
	s, ed, err := h.editorFor(c)
	if err != nil {
		return h.fail(c, err)
	}
	if ed.CollectionID() == editor.SandboxCollectionID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "the sandbox grid cannot be saved"})
	}
	products, layout := ed.Selected()
	if err := h.d.Pinned.Save(ed.CollectionID(), string(layout), products, s.Username); err != nil {
		return h.fail(c, err)
	}
	h.d.Log.Info("pinned layout saved",
		zap.Int("collection", ed.CollectionID()),
		zap.Int("products", len(products)),
		zap.String("user", s.Username))
	return c.JSON(http.StatusOK, echo.Map{"saved": len(products), "layout": layout})
}

func (h *handler) fail(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		return he
	}
	status := api.UpstreamStatus(err)
	if status >= http.StatusInternalServerError {
		h.d.Log.Warn("collection request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
