package cmd

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dashboard.GO/config"
	"dashboard.GO/core/cache"
)

// runtime is what the maintenance commands run against.
type runtime struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Cache  cache.Store
}

// openRuntime is replaced in tests.
var openRuntime = func() (*runtime, error) {
	config.LoadAppConfig()
	log, err := config.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := config.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	config.InitRedis()
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err != nil {
			log.Warn("redis not reachable, using in-process cache", zap.Error(err))
			config.RedisClient = nil
		}
	}
	return &runtime{
		Config: config.AppConfig,
		DB:     db,
		Log:    log,
		Cache:  cache.NewStore(config.RedisClient),
	}, nil
}
