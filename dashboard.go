//go:build !cli
// +build !cli

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"dashboard.GO/api"
	_ "dashboard.GO/api/catalog"
	_ "dashboard.GO/api/collection"
	_ "dashboard.GO/api/graphql"
	"dashboard.GO/config"
	"dashboard.GO/core/auth"
	_ "dashboard.GO/custom"
	"dashboard.GO/html"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig

	log, err := config.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Initialize Redis
	config.InitRedis()
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err != nil {
			config.RedisClient = nil // Disable Redis if not reachable
			log.Warn("redis configured but not reachable, using in-process cache", zap.Error(err))
		} else {
			log.Info("redis connection successful")
		}
	} else {
		log.Info("redis not configured, using in-process cache")
	}

	db, err := config.NewDB()
	if err != nil {
		log.Fatal("failed to connect to DB", zap.Error(err))
	}
	sqldb, err := db.DB()
	if err != nil {
		log.Fatal("failed to get DB instance", zap.Error(err))
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("database connection successful")

	deps := api.NewDeps(cfg, db, log, config.RedisClient)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			c.Response().Before(func() {
				duration := time.Since(start).Milliseconds()
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			})
			return next(c)
		}
	})

	e.Validator = api.NewValidator()
	t, err := html.NewTemplate()
	if err != nil {
		log.Fatal("failed to parse templates", zap.Error(err))
	}
	e.Renderer = t
	for _, tmpl := range t.Templates.Templates() {
		log.Debug("loaded template", zap.String("name", tmpl.Name()))
	}

	e.Use(auth.Middleware(deps.Sessions, deps.AuthOptions()))

	api.ApplyRoutes(e, deps)
	api.ApplyModules(e.Group("/api"), deps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
