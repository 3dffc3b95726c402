package graphql

import (
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"

	"dashboard.GO/api"
	"dashboard.GO/core/auth"
	graphqlpkg "dashboard.GO/graphql"
	"dashboard.GO/graphqlserver"
)

func init() {
	api.RegisterRoute(RegisterGraphQLRoutes)
}

func RegisterGraphQLRoutes(e *echo.Echo, d *api.Deps) {
	schema, err := graphqlserver.NewSchema(d.Pinned)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	registerRoutes(e, schema)
}

// RegisterGraphQLRoutesWithSchema registers /graphql with a custom schema (for tests with mocks).
func RegisterGraphQLRoutesWithSchema(e *echo.Echo, schema *graphql.Schema) {
	registerRoutes(e, schema)
}

func registerRoutes(e *echo.Echo, schema *graphql.Schema) {
	h := sessionContext(graphqlserver.Handler(schema))
	e.POST("/graphql", h)
	e.GET("/graphql/playground", echo.WrapHandler(playgroundHandler()))
}

// sessionContext exposes the signed-in session to resolvers.
func sessionContext(next http.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if s, ok := auth.CurrentSession(c); ok {
			req = req.WithContext(graphqlpkg.WithSession(req.Context(), s))
		}
		next.ServeHTTP(c.Response(), req)
		return nil
	}
}

func playgroundHandler() http.Handler {
	html := `<!DOCTYPE html>
<html>
<head>
	<title>GraphQL Playground</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
</head>
<body>
	<div id="root"/>
	<script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
	<script>window.addEventListener('load', function() {
		GraphQLPlayground.init({ endpoint: '/graphql' });
	})</script>
</body>
</html>`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	})
}
