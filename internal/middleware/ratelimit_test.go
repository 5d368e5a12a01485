package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"tasktracker/internal/config"

	"github.com/gofiber/fiber/v2"
)

func TestNewRateLimitConfig(t *testing.T) {
	rl := NewRateLimitConfig(&config.Config{Environment: "production", RateLimitGlobal: 50, RateLimitAuth: 5}, nil)
	if rl.GlobalAPIMax != 50 || rl.AuthMax != 5 {
		t.Errorf("Expected configured limits, got %d/%d", rl.GlobalAPIMax, rl.AuthMax)
	}

	rl = NewRateLimitConfig(&config.Config{Environment: "development"}, nil)
	if rl.GlobalAPIMax != 1000 {
		t.Errorf("Expected relaxed development limit 1000, got %d", rl.GlobalAPIMax)
	}
	if rl.AuthMax != 20 {
		t.Errorf("Expected default auth limit 20, got %d", rl.AuthMax)
	}
}

func TestAuthRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", AuthRateLimiter(&RateLimitConfig{AuthMax: 2, AuthExpiration: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i, want := range []int{200, 200, 429} {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		if err != nil {
			t.Fatalf("Failed to send request: %v", err)
		}
		if resp.StatusCode != want {
			t.Fatalf("Request %d: expected %d, got %d", i+1, want, resp.StatusCode)
		}
	}
}
