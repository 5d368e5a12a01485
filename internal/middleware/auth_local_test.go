package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"tasktracker/internal/database"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
	"tasktracker/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubUsers map[string]*models.User

func (s stubUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

func setupAuthApp(t *testing.T) (*fiber.App, *auth.LocalJWTAuth, *models.User) {
	t.Helper()
	jwtAuth, err := auth.NewLocalJWTAuth("middleware-test", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create jwt auth: %v", err)
	}
	user := &models.User{ID: primitive.NewObjectID(), Username: "admin"}
	users := stubUsers{user.ID.Hex(): user}

	app := fiber.New()
	app.Use(LocalAuthMiddleware(jwtAuth, users))
	app.Get("/who", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": CurrentUserID(c), "username": c.Locals(LocalUsername)})
	})
	return app, jwtAuth, user
}

func TestLocalAuthMiddleware(t *testing.T) {
	app, jwtAuth, user := setupAuthApp(t)

	valid, err := jwtAuth.GenerateToken(user.ID.Hex(), user.Username)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	orphan, err := jwtAuth.GenerateToken(primitive.NewObjectID().Hex(), "ghost")
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	tests := []struct {
		name   string
		url    string
		header string
		status int
	}{
		{"bearer header", "/who", "Bearer " + valid, fiber.StatusOK},
		{"query token", "/who?token=" + valid, "", fiber.StatusOK},
		{"missing", "/who", "", fiber.StatusUnauthorized},
		{"malformed header", "/who", "Token " + valid, fiber.StatusUnauthorized},
		{"garbage token", "/who", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"deleted user", "/who", "Bearer " + orphan, fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to send request: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("Expected status %d, got %d", tt.status, resp.StatusCode)
			}

			var body map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if tt.status == fiber.StatusOK {
				if body["id"] != user.ID.Hex() || body["username"] != "admin" {
					t.Errorf("Unexpected locals: %v", body)
				}
			} else if _, ok := body["error"]; !ok {
				t.Errorf("Expected error field, got %v", body)
			}
		})
	}
}

type failingUsers struct {
	err error
}

func (f failingUsers) GetByID(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func TestLocalAuthMiddlewareLookupErrors(t *testing.T) {
	jwtAuth, err := auth.NewLocalJWTAuth("middleware-test", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create jwt auth: %v", err)
	}
	token, err := jwtAuth.GenerateToken(primitive.NewObjectID().Hex(), "admin")
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"store outage", errors.New("server selection error: context deadline exceeded"), fiber.StatusInternalServerError, "Error interno del servidor"},
		{"user removed", services.ErrUserNotFound, fiber.StatusUnauthorized, "Usuario no encontrado"},
		{"wrapped not found", fmt.Errorf("failed to get user: %w", database.ErrNotFound), fiber.StatusUnauthorized, "Usuario no encontrado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(LocalAuthMiddleware(jwtAuth, failingUsers{err: tt.err}))
			app.Get("/who", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

			req := httptest.NewRequest("GET", "/who", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to send request: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Fatalf("Expected status %d, got %d", tt.status, resp.StatusCode)
			}

			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body["error"] != tt.msg {
				t.Errorf("Expected error %q, got %q", tt.msg, body["error"])
			}
		})
	}
}
