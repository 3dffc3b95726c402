package config

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the shared upstream-response cache client. Nil means the
// in-process cache is used.
var RedisClient *redis.Client

// InitRedis connects from REDIS_URL, or from REDIS_ADDR/REDIS_PASS/REDIS_DB.
func InitRedis() {
	RedisClient = nil
	if url := GetEnv("REDIS_URL", ""); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			log.Printf("invalid REDIS_URL, caching in process: %v", err)
			return
		}
		RedisClient = redis.NewClient(opts)
		return
	}
	addr := GetEnv("REDIS_ADDR", "")
	if addr == "" {
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: GetEnv("REDIS_PASS", ""),
		DB:       GetEnvInt("REDIS_DB", 0),
	})
}

func RedisCtx() context.Context {
	return context.Background()
}
