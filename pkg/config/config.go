package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig is built once at process start and handed to constructors
// explicitly. Nothing reads the environment after startup.
type AppConfig struct {
	Environment string
	Port        string

	// DatabaseURL selects the postgres adapter when set; otherwise the
	// sqlite adapter opens DatabasePath.
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	// Postgres migrations use dialect-specific SQL kept apart from the
	// sqlite set.
	PostgresMigrationsPath string

	JWTSecret string
	TokenTTL  time.Duration

	RateLimitEnabled bool
	EnforceHTTPS     bool

	MetricsPort  string
	OTLPEndpoint string
}

func Load() *AppConfig {
	cfg := &AppConfig{
		Environment:    envOr("APP_ENV", "development"),
		Port:           envOr("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabasePath:   envOr("DATABASE_PATH", "database.db"),
		MigrationsPath: envOr("MIGRATIONS_PATH", "db/migrations"),

		PostgresMigrationsPath: envOr("POSTGRES_MIGRATIONS_PATH", "infra/migrations"),

		JWTSecret:    envOr("JWT_SECRET", "change-me-in-production-use-at-least-32-chars"),
		TokenTTL:     7 * 24 * time.Hour,
		MetricsPort:  envOr("METRICS_PORT", "9091"),
		OTLPEndpoint: envOr("OTLP_ENDPOINT", "localhost:4317"),
	}

	if days, err := strconv.Atoi(os.Getenv("JWT_EXPIRATION_DAYS")); err == nil && days > 0 {
		cfg.TokenTTL = time.Duration(days) * 24 * time.Hour
	}

	cfg.RateLimitEnabled = envOr("RATE_LIMIT_ENABLED", "true") == "true"
	cfg.EnforceHTTPS = os.Getenv("ENFORCE_HTTPS") == "true" || os.Getenv("GIN_MODE") == "release"

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
	}

	return cfg
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
