package config

// Cron schedules, overridable per environment.
func SessionPurgeSchedule() string {
	return GetEnv("CRON_SESSION_PURGE", "@every 1h")
}

func CacheFlushSchedule() string {
	return GetEnv("CRON_CACHE_FLUSH", "@every 30m")
}
