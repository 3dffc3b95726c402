package config

import (
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Upstream collaborators
	FakeStoreURL        string
	MaestroURL          string
	IdentityVariant     string // "token" or "maestro"
	IdentityURL         string
	MaestroClientID     string
	MaestroClientSecret string
	HTTPTimeout         time.Duration

	// Session front door
	SessionCookie string
	SessionTTL    time.Duration
	CookieSecure  bool

	// Collection editor
	DefaultCollectionID int
	WarehouseOverride   bool
	CacheTTL            time.Duration
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = Build()
	})
}

// Build reads a fresh Config from the environment. Tests use it directly.
func Build() *Config {
	cfg := &Config{
		AppName: GetEnv("APP_NAME", "Dashboard.GO"),
		Port:    GetEnv("PORT", "8080"),
		Env:     GetEnv("APP_ENV", "development"),
		Debug:   GetEnvBool("DEBUG", false),

		FakeStoreURL:        GetEnv("FAKESTORE_API", "https://fakestoreapi.com"),
		MaestroURL:          GetEnv("MAESTRO_API", "https://maestro-api-dev.secil.biz"),
		IdentityVariant:     GetEnv("IDENTITY_VARIANT", "token"),
		MaestroClientID:     GetEnv("MAESTRO_CLIENT_ID", ""),
		MaestroClientSecret: GetEnv("MAESTRO_CLIENT_SECRET", ""),
		HTTPTimeout:         time.Duration(GetEnvInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,

		SessionCookie: GetEnv("SESSION_COOKIE", "dashboard_session"),
		SessionTTL:    time.Duration(GetEnvInt("SESSION_TTL_HOURS", 12)) * time.Hour,
		CookieSecure:  GetEnvBool("COOKIE_SECURE", false),

		DefaultCollectionID: GetEnvInt("DEFAULT_COLLECTION_ID", 72),
		WarehouseOverride:   GetEnvBool("WAREHOUSE_OVERRIDE", true),
		CacheTTL:            time.Duration(GetEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	cfg.IdentityURL = GetEnv("IDENTITY_URL", defaultIdentityURL(cfg))
	return cfg
}

func defaultIdentityURL(cfg *Config) string {
	if cfg.IdentityVariant == "maestro" {
		return cfg.MaestroURL + "/Auth/Login"
	}
	return cfg.FakeStoreURL + "/auth/login"
}
