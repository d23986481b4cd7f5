package app

import (
	"os"
	"strconv"
	"time"

	"github.com/feedme/feedme/internal/api/oidc"
	"github.com/feedme/feedme/pkg/jwtx"
)

type Config struct {
	Port         int    // HTTP server port (default: 3000)
	DatabaseFile string // Path to SQLite database file (default: ./feedme.db)

	JWTSecret        string        // Required: secret for access tokens
	JWTRefreshSecret string        // Required: secret for refresh tokens, must differ
	AccessTokenTTL   time.Duration // Access token lifetime (default: 24h)
	RefreshTokenTTL  time.Duration // Refresh token lifetime (default: 168h)

	FrontendURL   string // SPA origin; federated callbacks redirect here
	SecureCookies bool   // Mark state cookies Secure (default: true outside dev)

	Providers oidc.Config // Federated login providers; blank creds disable one

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	InventoryPurgeInterval time.Duration // Expired-inventory sweep interval (default: 1h)
}

func LoadConfig() Config {
	env := getEnvOrDefault("ENV", "dev")

	cfg := Config{
		Port:         getEnvIntOrDefault("PORT", 3000),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "feedme.db"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   getEnvDurationOrDefault("JWT_EXPIRES_IN", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:  getEnvDurationOrDefault("JWT_REFRESH_EXPIRES_IN", jwtx.DefaultRefreshTokenTTL),

		FrontendURL:   getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		SecureCookies: env != "dev",

		Providers: oidc.Config{
			Google: oidc.ProviderConfig{
				ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
				ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
				CallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
			},
			GitHub: oidc.ProviderConfig{
				ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
				ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
				CallbackURL:  os.Getenv("GITHUB_CALLBACK_URL"),
			},
			Microsoft: oidc.ProviderConfig{
				ClientID:     os.Getenv("MICROSOFT_CLIENT_ID"),
				ClientSecret: os.Getenv("MICROSOFT_CLIENT_SECRET"),
				CallbackURL:  os.Getenv("MICROSOFT_CALLBACK_URL"),
			},
		},

		Env:                 env,
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		InventoryPurgeInterval: getEnvDurationOrDefault("INVENTORY_PURGE_INTERVAL", time.Hour),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "24h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Fall back to integer seconds, the format the original env files used
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
