package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dashboard.GO/api"
	"dashboard.GO/client/fakestore"
	"dashboard.GO/core/auth"
	"dashboard.GO/service/cart"
	catalogService "dashboard.GO/service/catalog"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

type addItemRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"gte=0"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type checkoutRequest struct {
	UserID int `json:"userId" validate:"gte=0"`
}

// demoUserID receives checkouts that name no user.
const demoUserID = 1

type handler struct {
	d *api.Deps
}

func RegisterCatalogRoutes(apiGroup *echo.Group, d *api.Deps) {
	h := &handler{d: d}

	g := apiGroup.Group("/catalog")
	// GET /api/catalog/products?category=&search=&minPrice=&maxPrice=
	g.GET("/products", h.products)
	g.GET("/categories", h.categories)
	g.GET("/carts", h.carts)
	g.GET("/users", h.users)

	cg := apiGroup.Group("/cart")
	cg.GET("", h.cart)
	cg.POST("/items", h.addItem)
	cg.PATCH("/items/:productId", h.updateItem)
	cg.DELETE("/items/:productId", h.removeItem)
	cg.POST("/checkout", h.checkout)
}

func (h *handler) products(c echo.Context) error {
	products, err := h.d.FakeStore.Products(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	criteria := catalogService.ParseCriteria(
		c.QueryParam("category"),
		c.QueryParam("search"),
		c.QueryParam("minPrice"),
		c.QueryParam("maxPrice"),
	)
	return c.JSON(http.StatusOK, catalogService.Apply(products, criteria))
}

func (h *handler) categories(c echo.Context) error {
	cats, err := h.d.FakeStore.Categories(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *handler) carts(c echo.Context) error {
	carts, err := h.d.FakeStore.Carts(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, carts)
}

func (h *handler) users(c echo.Context) error {
	users, err := h.d.FakeStore.Users(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *handler) sessionCart(c echo.Context) *cart.Cart {
	s, _ := auth.CurrentSession(c)
	return h.d.Carts.Get(s.ID)
}

func cartView(ct *cart.Cart) echo.Map {
	return echo.Map{"items": ct.Items(), "total": ct.Total()}
}

func (h *handler) cart(c echo.Context) error {
	return c.JSON(http.StatusOK, cartView(h.sessionCart(c)))
}

func (h *handler) addItem(c echo.Context) error {
	var req addItemRequest
	if err := api.BindValid(c, &req); err != nil {
		return err
	}
	products, err := h.d.FakeStore.Products(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	var found *fakestore.Product
	for i := range products {
		if products[i].ID == req.ProductID {
			found = &products[i]
			break
		}
	}
	if found == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	ct := h.sessionCart(c)
	ct.Add(cart.Item{
		ProductID: found.ID,
		Title:     found.Title,
		Image:     found.Image,
		Price:     found.Price,
	}, req.Quantity)
	return c.JSON(http.StatusOK, cartView(ct))
}

func (h *handler) updateItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var req quantityRequest
	if err := api.BindValid(c, &req); err != nil {
		return err
	}
	ct := h.sessionCart(c)
	ct.UpdateQuantity(id, *req.Quantity)
	return c.JSON(http.StatusOK, cartView(ct))
}

func (h *handler) removeItem(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	ct := h.sessionCart(c)
	ct.Remove(id)
	return c.JSON(http.StatusOK, cartView(ct))
}

func (h *handler) checkout(c echo.Context) error {
	var req checkoutRequest
	if c.Request().ContentLength > 0 {
		if err := api.BindValid(c, &req); err != nil {
			return err
		}
	}
	if req.UserID == 0 {
		req.UserID = demoUserID
	}
	created, err := h.sessionCart(c).Checkout(c.Request().Context(), h.d.FakeStore, req.UserID, time.Now())
	if errors.Is(err, cart.ErrEmpty) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err != nil {
		return h.fail(c, err)
	}
	h.d.Log.Info("cart checked out", zap.Int("cart", created.ID), zap.Int("user", created.UserID))
	return c.JSON(http.StatusCreated, created)
}

func (h *handler) fail(c echo.Context, err error) error {
	h.d.Log.Warn("demo store request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(api.UpstreamStatus(err), echo.Map{"error": err.Error()})
}
