package html

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dashboard.GO/api"
	"dashboard.GO/client/fakestore"
	"dashboard.GO/client/maestro"
	"dashboard.GO/config"
	"dashboard.GO/core/auth"
	"dashboard.GO/html/parts"
	"dashboard.GO/model/catalog"
	entity "dashboard.GO/model/entity"
	"dashboard.GO/service/cart"
	catalogService "dashboard.GO/service/catalog"
	"dashboard.GO/service/editor"
	"dashboard.GO/service/filters"
	"dashboard.GO/service/grid"
)

func init() {
	api.RegisterHTMLModule(RegisterPageRoutes)
}

// Page is the data every template receives.
type Page struct {
	AppName string
	Title   string
	Active  string
	User    string
	CSS     template.CSS
	Error   string
	Data    interface{}
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	ReturnTo string `form:"return_to"`
}

type loginView struct {
	Username string
	ReturnTo string
}

type pages struct {
	d *api.Deps
}

// RegisterPageRoutes registers the login flow and the dashboard pages.
func RegisterPageRoutes(e *echo.Echo, d *api.Deps) {
	p := &pages{d: d}
	e.GET(config.LoginPath, p.loginPage)
	e.POST(config.LoginPath, p.login)
	e.POST("/logout", p.logout)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, auth.DefaultReturnTo)
	})
	e.GET("/dashboard", p.home)
	e.GET("/dashboard/products", p.products)
	e.GET("/dashboard/products/drag", p.drag)
	e.GET("/dashboard/carts", p.carts)
	e.GET("/dashboard/users", p.users)
	e.GET("/dashboard/collection", p.collections)
	e.GET("/dashboard/collection/edit/:id", p.edit)
}

func (p *pages) page(c echo.Context, title, active string) Page {
	pg := Page{
		AppName: p.d.Config.AppName,
		Title:   title,
		Active:  active,
		CSS:     parts.GetCriticalCSS(),
	}
	if s, ok := auth.CurrentSession(c); ok {
		pg.User = s.Username
	}
	return pg
}

func (p *pages) render(c echo.Context, status int, name string, pg Page) error {
	return c.Render(status, name, pg)
}

// fail renders the page with the error text; nothing is retried.
func (p *pages) fail(c echo.Context, name string, pg Page, err error) error {
	p.d.Log.Warn("page load failed", zap.String("page", name), zap.Error(err))
	pg.Error = err.Error()
	return p.render(c, http.StatusOK, name, pg)
}

func (p *pages) loginPage(c echo.Context) error {
	pg := p.page(c, "Login", "")
	pg.Data = loginView{ReturnTo: auth.SafeReturnTo(c.QueryParam("return_to"))}
	return p.render(c, http.StatusOK, "login.html", pg)
}

func (p *pages) login(c echo.Context) error {
	var form loginForm
	_ = c.Bind(&form)
	pg := p.page(c, "Login", "")
	pg.Data = loginView{Username: form.Username, ReturnTo: auth.SafeReturnTo(form.ReturnTo)}

	if err := c.Validate(&form); err != nil {
		pg.Error = "Username and password are required."
		return p.render(c, http.StatusBadRequest, "login.html", pg)
	}

	creds, err := p.d.Identity.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		p.d.Log.Info("login rejected", zap.String("user", form.Username), zap.Error(err))
		pg.Error = "Invalid credentials."
		return p.render(c, http.StatusUnauthorized, "login.html", pg)
	}

	s := &entity.Session{
		Username:    form.Username,
		Variant:     string(creds.Variant),
		AccessToken: creds.AccessToken,
		TokenExpiry: creds.Expiry(time.Now()),
	}
	if creds.RefreshToken != "" {
		rt := creds.RefreshToken
		s.RefreshToken = &rt
	}
	if err := p.d.Sessions.Create(s, p.d.Config.SessionTTL); err != nil {
		p.d.Log.Error("session create failed", zap.Error(err))
		pg.Error = "Could not start a session, please try again."
		return p.render(c, http.StatusInternalServerError, "login.html", pg)
	}
	auth.SetCookie(c, p.d.AuthOptions(), s.ID, p.d.Config.SessionTTL)
	p.d.Log.Info("login", zap.String("user", s.Username), zap.String("variant", s.Variant))
	return c.Redirect(http.StatusSeeOther, auth.SafeReturnTo(form.ReturnTo))
}

func (p *pages) logout(c echo.Context) error {
	if s, ok := auth.CurrentSession(c); ok {
		if err := p.d.Sessions.Delete(s.ID); err != nil {
			p.d.Log.Warn("session delete failed", zap.Error(err))
		}
		p.d.ForgetSession(s.ID)
	}
	auth.ClearCookie(c, p.d.AuthOptions())
	return c.Redirect(http.StatusSeeOther, config.LoginPath)
}

func (p *pages) home(c echo.Context) error {
	pg := p.page(c, "Home", "home")
	s, _ := auth.CurrentSession(c)
	pg.Data = map[string]interface{}{
		"Variant":             s.Variant,
		"DefaultCollectionID": p.d.Config.DefaultCollectionID,
	}
	return p.render(c, http.StatusOK, "dashboard.html", pg)
}

type productsView struct {
	Products   []fakestore.Product
	Categories []string
	Criteria   catalogService.Criteria
	MinPrice   string
	MaxPrice   string
	Cart       cartView
}

type cartView struct {
	Items []cart.Item
	Total float64
}

func (p *pages) products(c echo.Context) error {
	pg := p.page(c, "Products", "products")
	view := productsView{
		Criteria: catalogService.ParseCriteria(c.QueryParam("category"), c.QueryParam("search"),
			c.QueryParam("minPrice"), c.QueryParam("maxPrice")),
		MinPrice: c.QueryParam("minPrice"),
		MaxPrice: c.QueryParam("maxPrice"),
	}
	s, _ := auth.CurrentSession(c)
	ct := p.d.Carts.Get(s.ID)
	view.Cart = cartView{Items: ct.Items(), Total: ct.Total()}
	pg.Data = view

	var products []fakestore.Product
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		products, err = p.d.FakeStore.Products(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		view.Categories, err = p.d.FakeStore.Categories(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		view.Categories = nil
		pg.Data = view
		return p.fail(c, "products.html", pg, err)
	}
	view.Products = catalogService.Apply(products, view.Criteria)
	pg.Data = view
	return p.render(c, http.StatusOK, "products.html", pg)
}

func (p *pages) carts(c echo.Context) error {
	pg := p.page(c, "Carts", "carts")
	carts, err := p.d.FakeStore.Carts(c.Request().Context())
	pg.Data = map[string]interface{}{"Carts": carts}
	if err != nil {
		return p.fail(c, "carts.html", pg, err)
	}
	return p.render(c, http.StatusOK, "carts.html", pg)
}

func (p *pages) users(c echo.Context) error {
	pg := p.page(c, "Users", "users")
	users, err := p.d.FakeStore.Users(c.Request().Context())
	pg.Data = map[string]interface{}{"Users": users}
	if err != nil {
		return p.fail(c, "users.html", pg, err)
	}
	return p.render(c, http.StatusOK, "users.html", pg)
}

func (p *pages) collections(c echo.Context) error {
	pg := p.page(c, "Koleksiyonlar", "collection")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	s, _ := auth.CurrentSession(c)

	res, err := p.d.Maestro.GetCollections(c.Request().Context(), s.AccessToken, page, maestro.DefaultPageSize)
	if err != nil {
		pg.Data = map[string]interface{}{"Rows": nil, "Meta": nil}
		return p.fail(c, "collections.html", pg, err)
	}
	rows := make([]catalog.CollectionRow, 0, len(res.Data))
	for _, col := range res.Data {
		rows = append(rows, col.Row())
	}
	pg.Data = map[string]interface{}{"Rows": rows, "Meta": res.Meta}
	return p.render(c, http.StatusOK, "collections.html", pg)
}

type editorView struct {
	Heading     string
	CanSave     bool
	State       editor.State
	Layouts     []grid.Layout
	SortOptions []filters.SortOption
}

func (p *pages) edit(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusNotFound, "collection not found")
	}
	return p.editor(c, id, "Koleksiyon "+strconv.Itoa(id)+" Sabitleri", "collection")
}

func (p *pages) drag(c echo.Context) error {
	return p.editor(c, editor.SandboxCollectionID, "Drag & Drop", "drag")
}

func (p *pages) editor(c echo.Context, collectionID int, heading, active string) error {
	pg := p.page(c, heading, active)
	s, _ := auth.CurrentSession(c)
	ed, err := p.d.MountEditor(c.Request().Context(), s, collectionID)
	view := editorView{
		Heading:     heading,
		CanSave:     collectionID != editor.SandboxCollectionID,
		State:       ed.Snapshot(),
		Layouts:     grid.Layouts,
		SortOptions: filters.SortOptions,
	}
	pg.Data = view
	if err != nil && !errors.Is(err, editor.ErrStale) {
		p.d.Log.Warn("editor load failed", zap.Int("collection", collectionID), zap.Error(err))
		pg.Error = "Failed to load data: " + err.Error()
	}
	return p.render(c, http.StatusOK, "editor.html", pg)
}
