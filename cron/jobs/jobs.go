package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dashboard.GO/config"
	"dashboard.GO/core/cache"
	"dashboard.GO/cron"
)

const (
	SessionPurge = "sessionpurge"
	CacheFlush   = "cacheflush"
)

// Purger removes expired sessions.
type Purger interface {
	PurgeExpired() (int64, error)
}

// Builtin returns the jobs every deployment runs.
func Builtin(sessions Purger, store cache.Store, log *zap.Logger) map[string]cron.Job {
	return map[string]cron.Job{
		SessionPurge: {Schedule: config.SessionPurgeSchedule(), Run: PurgeSessions(sessions, log)},
		CacheFlush:   {Schedule: config.CacheFlushSchedule(), Run: FlushCatalog(store, log)},
	}
}

func PurgeSessions(sessions Purger, log *zap.Logger) func(...string) {
	return func(...string) {
		n, err := sessions.PurgeExpired()
		if err != nil {
			log.Error("session purge failed", zap.Error(err))
			return
		}
		log.Info("expired sessions purged", zap.Int64("count", n))
	}
}

// FlushCatalog drops every cached upstream catalog response.
func FlushCatalog(store cache.Store, log *zap.Logger) func(...string) {
	return func(...string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Invalidate(ctx, cache.TagCatalog); err != nil {
			log.Error("catalog cache flush failed", zap.Error(err))
			return
		}
		log.Info("catalog cache flushed")
	}
}
