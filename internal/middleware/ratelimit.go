package middleware

import (
	"log"
	"time"

	"tasktracker/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig holds rate limiting settings
type RateLimitConfig struct {
	// Global limits (per IP) for every /api request
	GlobalAPIMax        int
	GlobalAPIExpiration time.Duration

	// Login and register (per IP)
	AuthMax        int
	AuthExpiration time.Duration

	// Storage shares counters between instances. Nil keeps them in memory.
	Storage fiber.Storage
}

// DefaultRateLimitConfig returns production-safe defaults
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		// Global: 200/min = ~3.3 req/sec
		GlobalAPIMax:        200,
		GlobalAPIExpiration: 1 * time.Minute,

		// Credential endpoints: 20/min slows down password guessing
		AuthMax:        20,
		AuthExpiration: 1 * time.Minute,
	}
}

// NewRateLimitConfig applies the configured limits on top of the defaults
func NewRateLimitConfig(cfg *config.Config, storage fiber.Storage) *RateLimitConfig {
	rl := DefaultRateLimitConfig()
	if cfg.RateLimitGlobal > 0 {
		rl.GlobalAPIMax = cfg.RateLimitGlobal
	}
	if cfg.RateLimitAuth > 0 {
		rl.AuthMax = cfg.RateLimitAuth
	}
	rl.Storage = storage

	// Development mode: more lenient limits
	if cfg.Environment == "development" {
		rl.GlobalAPIMax *= 5
		log.Println("⚠️  [RATE-LIMIT] Development mode: using relaxed rate limits")
	}
	return rl
}

// GlobalAPIRateLimiter creates a rate limiter for all API requests
func GlobalAPIRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.GlobalAPIMax,
		Expiration: config.GlobalAPIExpiration,
		Storage:    config.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "global:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("🚫 [RATE-LIMIT] Global limit reached for IP: %s", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Demasiadas peticiones. Inténtalo más tarde.",
				"retry_after": int(config.GlobalAPIExpiration.Seconds()),
			})
		},
	})
}

// AuthRateLimiter limits login and register attempts per IP
func AuthRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.AuthMax,
		Expiration: config.AuthExpiration,
		Storage:    config.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("⚠️  [RATE-LIMIT] Auth limit reached for IP: %s on %s", c.IP(), c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Demasiados intentos. Inténtalo más tarde.",
				"retry_after": int(config.AuthExpiration.Seconds()),
			})
		},
	})
}
