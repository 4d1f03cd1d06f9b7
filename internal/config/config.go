// Package config loads server settings from the environment.
// An optional .env file is read first; real environment variables always win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backend names
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all runtime settings for the server
type Config struct {
	Port               string
	DatabaseURL        string
	PostStore          string
	SessionStore       string
	RedisURL           string
	DevSessionToken    string
	DevSessionUserID   string
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
	SessionCacheSize   int
	SessionCacheTTL    time.Duration
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

// Load reads configuration. envFiles are optional dotenv files; missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8081"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		DevSessionToken:  os.Getenv("DEV_SESSION_TOKEN"),
		DevSessionUserID: getEnv("DEV_SESSION_USER_ID", "1"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	defaultBackend := BackendMemory
	if cfg.DatabaseURL != "" {
		defaultBackend = BackendPostgres
	}
	cfg.PostStore = strings.ToLower(getEnv("POST_STORE", defaultBackend))
	cfg.SessionStore = strings.ToLower(getEnv("SESSION_STORE", defaultBackend))

	var err error
	if cfg.SessionCacheSize, err = getEnvInt("SESSION_CACHE_SIZE", 1024); err != nil {
		return nil, err
	}
	if cfg.SessionCacheTTL, err = getEnvDuration("SESSION_CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimitRequests, err = getEnvInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getEnvDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.PostStore {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("invalid POST_STORE %q: must be memory or postgres", c.PostStore)
	}

	switch c.SessionStore {
	case BackendMemory, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: must be memory, postgres or redis", c.SessionStore)
	}

	if (c.PostStore == BackendPostgres || c.SessionStore == BackendPostgres) && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the postgres backend")
	}
	if c.SessionStore == BackendRedis && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required for the redis session store")
	}

	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimitRequests)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}

	return nil
}

// UsesPostgres reports whether any store needs a database connection
func (c *Config) UsesPostgres() bool {
	return c.PostStore == BackendPostgres || c.SessionStore == BackendPostgres
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
