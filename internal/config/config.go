package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const devJWTSecret = "tasktracker-dev-secret-change-me"

// Config holds all application configuration
type Config struct {
	Port        string
	Environment string
	MongoURI    string
	RedisURL    string // empty disables Redis

	JWTSecret   string
	TokenExpiry time.Duration

	AllowedOrigins string

	StatsRefreshCron string
	UserCacheTTL     time.Duration

	ServeFrontend bool
	FrontendDir   string

	RateLimitGlobal int // requests per minute per IP on /api
	RateLimitAuth   int // requests per minute per IP on login/register
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	environment := strings.ToLower(getEnv("ENVIRONMENT", "development"))

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" && environment != "production" {
		jwtSecret = devJWTSecret
	}

	return &Config{
		Port:        getEnv("PORT", "4000"),
		Environment: environment,
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017/tasktracker"),
		RedisURL:    getEnv("REDIS_URL", ""),

		JWTSecret:   jwtSecret,
		TokenExpiry: getDurationEnv("JWT_EXPIRES_IN", 7*24*time.Hour),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),

		StatsRefreshCron: getEnv("STATS_REFRESH_CRON", "*/5 * * * *"),
		UserCacheTTL:     getDurationEnv("USER_CACHE_TTL", 10*time.Minute),

		ServeFrontend: getBoolEnv("SERVE_FRONTEND", false),
		FrontendDir:   getEnv("FRONTEND_DIR", "./public"),

		RateLimitGlobal: getIntEnv("RATE_LIMIT_GLOBAL_API", 200),
		RateLimitAuth:   getIntEnv("RATE_LIMIT_AUTH", 20),
	}
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDevSecret reports whether tokens are signed with the built-in development secret
func (c *Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if c.TokenExpiry <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", c.TokenExpiry))
	}
	if _, err := cron.ParseStandard(c.StatsRefreshCron); err != nil {
		errs = append(errs, fmt.Errorf("invalid STATS_REFRESH_CRON %q: %w", c.StatsRefreshCron, err))
	}
	if c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI is required"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv accepts Go durations ("12h") and the "<n>d" day form
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if days, ok := strings.CutSuffix(value, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour
		}
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
