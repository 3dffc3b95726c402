package auth

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dashboard.GO/config"
	entity "dashboard.GO/model/entity"
)

const (
	contextSession = "session"
	// DefaultReturnTo is where a login lands without a usable return_to.
	DefaultReturnTo = "/dashboard"
)

// Sessions resolves a cookie value to a live session.
type Sessions interface {
	FindActive(id string) (*entity.Session, error)
}

type Options struct {
	CookieName string
	Secure     bool
}

// Middleware loads the session named by the cookie. Requests without one are
// redirected to the login page, or get 401 JSON when they target the API.
func Middleware(sessions Sessions, opts Options) echo.MiddlewareFunc {
	skipper := buildSkipper()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}
			cookie, err := c.Cookie(opts.CookieName)
			if err == nil && cookie.Value != "" {
				if s, err := sessions.FindActive(cookie.Value); err == nil {
					c.Set(contextSession, s)
					return next(c)
				}
				ClearCookie(c, opts)
			}
			return deny(c)
		}
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func deny(c echo.Context) error {
	path := c.Request().URL.Path
	if isAPI(path) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	target := config.LoginPath + "?return_to=" + url.QueryEscape(c.Request().URL.RequestURI())
	return c.Redirect(http.StatusSeeOther, target)
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/") || path == "/graphql"
}

// CurrentSession returns the session loaded by Middleware.
func CurrentSession(c echo.Context) (*entity.Session, bool) {
	s, ok := c.Get(contextSession).(*entity.Session)
	return s, ok && s != nil
}

// SetCookie issues the session cookie.
func SetCookie(c echo.Context, opts Options, sessionID string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     opts.CookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(c echo.Context, opts Options) {
	c.SetCookie(&http.Cookie{
		Name:     opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SafeReturnTo accepts only same-site absolute paths.
func SafeReturnTo(s string) string {
	if s == "" || !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") {
		return DefaultReturnTo
	}
	if strings.HasPrefix(s, config.LoginPath) {
		return DefaultReturnTo
	}
	return s
}
