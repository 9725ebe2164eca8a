package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"trendtruth/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Social   SocialConfig
	Analyze  AnalyzeConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
	// BackendURL points the standalone dashboard at a remote analyze API.
	// Empty means the dashboard talks to the in-process backend.
	BackendURL string
}

// DatabaseConfig holds run-history persistence settings.
// An empty URL disables persistence entirely.
type DatabaseConfig struct {
	URL string
}

// CacheConfig holds analyze-response cache settings.
// An empty RedisURL falls back to an in-process cache.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// SocialConfig holds trend source credentials and etiquette
type SocialConfig struct {
	XBearerToken string
	UserAgent    string
	Timeout      time.Duration
}

// AnalyzeConfig bounds one analysis cycle
type AnalyzeConfig struct {
	DefaultLimit int
	MinLimit     int
	MaxLimit     int
	MaxEvidence  int
}

// Load reads configuration from the environment (and .env when present)
func Load() (*Config, error) {
	godotenv.Load()

	ttl, err := getEnvDuration("ANALYZE_CACHE_TTL", 180*time.Second)
	if err != nil {
		return nil, errors.Wrap(errors.CodeConfigInvalid, err, "invalid ANALYZE_CACHE_TTL")
	}
	socialTimeout, err := getEnvDuration("SOCIAL_TIMEOUT", 12*time.Second)
	if err != nil {
		return nil, errors.Wrap(errors.CodeConfigInvalid, err, "invalid SOCIAL_TIMEOUT")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:       getEnvOrDefault("PORT", "8080"),
			GinMode:    getEnvOrDefault("GIN_MODE", "release"),
			BackendURL: os.Getenv("BACKEND_URL"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Cache: CacheConfig{
			RedisURL: os.Getenv("REDIS_URL"),
			TTL:      ttl,
		},
		Social: SocialConfig{
			XBearerToken: os.Getenv("X_BEARER_TOKEN"),
			UserAgent:    getEnvOrDefault("SOCIAL_USER_AGENT", "TrendTruth/1.0 (+https://github.com/trendtruth)"),
			Timeout:      socialTimeout,
		},
		Analyze: AnalyzeConfig{
			DefaultLimit: getEnvInt("ANALYZE_DEFAULT_LIMIT", 20),
			MinLimit:     5,
			MaxLimit:     40,
			MaxEvidence:  getEnvInt("ANALYZE_MAX_EVIDENCE", 12),
		},
	}

	if cfg.Analyze.DefaultLimit < cfg.Analyze.MinLimit || cfg.Analyze.DefaultLimit > cfg.Analyze.MaxLimit {
		return nil, errors.New(errors.CodeConfigInvalid, "ANALYZE_DEFAULT_LIMIT outside [5,40]")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}
