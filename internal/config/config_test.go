package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "MONGODB_URI", "JWT_SECRET", "JWT_EXPIRES_IN", "REDIS_URL", "STATS_REFRESH_CRON"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "4000" {
		t.Errorf("Expected default port 4000, got %s", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Expected development environment, got %s", cfg.Environment)
	}
	if cfg.TokenExpiry != 7*24*time.Hour {
		t.Errorf("Expected 7 day token expiry, got %v", cfg.TokenExpiry)
	}
	if cfg.JWTSecret == "" {
		t.Error("Expected a development JWT secret")
	}
	if cfg.RedisURL != "" {
		t.Errorf("Expected Redis disabled by default, got %q", cfg.RedisURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_EXPIRES_IN", "2d")
	t.Setenv("USER_CACHE_TTL", "90s")
	t.Setenv("SERVE_FRONTEND", "true")
	t.Setenv("RATE_LIMIT_AUTH", "-3")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.TokenExpiry != 48*time.Hour {
		t.Errorf("Expected 48h expiry, got %v", cfg.TokenExpiry)
	}
	if cfg.UserCacheTTL != 90*time.Second {
		t.Errorf("Expected 90s cache TTL, got %v", cfg.UserCacheTTL)
	}
	if !cfg.ServeFrontend {
		t.Error("Expected SERVE_FRONTEND to be enabled")
	}
	if cfg.RateLimitAuth != 20 {
		t.Errorf("Expected invalid limit to fall back to 20, got %d", cfg.RateLimitAuth)
	}
}

func TestValidateProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if !cfg.IsProduction() {
		t.Fatal("Expected production mode")
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected missing JWT secret to fail validation in production")
	}
}

func TestValidateCron(t *testing.T) {
	cfg := &Config{JWTSecret: "s", TokenExpiry: time.Hour, MongoURI: "mongodb://x", StatsRefreshCron: "every minute"}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected invalid cron expression to fail validation")
	}

	cfg.StatsRefreshCron = "0 * * * *"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected hourly cron to validate, got %v", err)
	}
}
