package custom

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"dashboard.GO/api"
	"dashboard.GO/cmd"
	gqlregistry "dashboard.GO/graphql/registry"
	"dashboard.GO/service/filters"
	"dashboard.GO/service/grid"
)

func init() {
	gqlregistry.Register("warehouses", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return filters.WarehouseValues(), nil
	})

	cmd.Register(&cobra.Command{
		Use:   "grid:layouts",
		Short: "Print the grid layout policy",
		Run: func(c *cobra.Command, args []string) {
			for _, l := range grid.Layouts {
				cfg := grid.ForLayout(l)
				fmt.Fprintf(c.OutOrStdout(), "%s\tcols=%d\tminRows=%d\tfixed=%d\n", l, cfg.Cols, cfg.MinRows, cfg.FixedSlots)
			}
		},
	})

	api.RegisterRoute(RegisterHealthRoute)
}

// RegisterHealthRoute exposes a public liveness probe that also pings the database.
func RegisterHealthRoute(e *echo.Echo, d *api.Deps) {
	e.GET("/health", func(c echo.Context) error {
		status := echo.Map{"status": "ok", "app": d.Config.AppName}
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, status)
		}
		status["database"] = "ok"
		return c.JSON(http.StatusOK, status)
	})
}
