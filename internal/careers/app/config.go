package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/service"
)

type Config struct {
	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./careers.db)
	DatabaseURL    string // Required for postgres: connection string

	Issuer      string        // Optional: expected iss claim of identity tokens
	Audience    []string      // Optional: comma separated aud values the token must carry
	JWKSURL     string        // One of JWKSURL/JWKSFile is required: identity provider key set
	JWKSFile    string        // Local JWKS document (development, see cmd/gentoken)
	JWKSRefresh time.Duration // JWKS refresh interval (default: 15m, 0 disables)

	InviteTTL         time.Duration // Invite lifetime (default: 7 days)
	StoreTimeout      time.Duration // Per-operation store deadline (default: 5s)
	DirectoryCacheSz  int           // Tenant lookup cache entries (default: 1024, 0 disables)
	DirectoryCacheTTL time.Duration // Tenant lookup cache TTL (default: 30s)
	SweepInterval     time.Duration // Expired invite sweep interval (default: 1h)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver: getEnvOrDefault("CAREERS_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("CAREERS_DATABASE_FILE", "careers.db"),
		DatabaseURL:    os.Getenv("CAREERS_DATABASE_URL"),

		Issuer:      os.Getenv("IDP_ISSUER"),
		Audience:    splitList(os.Getenv("IDP_AUDIENCE")),
		JWKSURL:     os.Getenv("IDP_JWKS_URL"),
		JWKSFile:    os.Getenv("IDP_JWKS_FILE"),
		JWKSRefresh: getEnvDurationOrDefault("IDP_JWKS_REFRESH", 15*time.Minute),

		InviteTTL:         getEnvDurationOrDefault("INVITE_TTL", service.DefaultInviteTTL),
		StoreTimeout:      getEnvDurationOrDefault("STORE_TIMEOUT", service.DefaultOpTimeout),
		DirectoryCacheSz:  getEnvIntOrDefault("DIRECTORY_CACHE_SIZE", service.DefaultDirectoryCacheSize),
		DirectoryCacheTTL: getEnvDurationOrDefault("DIRECTORY_CACHE_TTL", service.DefaultDirectoryCacheTTL),
		SweepInterval:     getEnvDurationOrDefault("SWEEP_INTERVAL", 1*time.Hour),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
