package middleware

import (
	"context"
	"errors"
	"log"

	"tasktracker/internal/database"
	"tasktracker/internal/logging"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
	"tasktracker/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by LocalAuthMiddleware
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// UserLookup loads the account a token was issued for
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// LocalAuthMiddleware verifies the bearer token and loads its user.
// The token may also be passed as a ?token= query parameter.
func LocalAuthMiddleware(jwtAuth *auth.LocalJWTAuth, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		// 1. Authorization header
		if authHeader := c.Get("Authorization"); authHeader != "" {
			if extracted, err := auth.ExtractToken(authHeader); err == nil {
				token = extracted
			}
		}

		// 2. Query parameter
		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token requerido",
			})
		}

		claims, err := jwtAuth.VerifyToken(token)
		if err != nil {
			log.Printf("❌ Auth failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido",
			})
		}

		// the account may have been removed after the token was issued
		user, err := users.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			if isMissingUser(err) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Usuario no encontrado",
				})
			}
			logging.FromRequest(c).Error("auth user lookup failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error interno del servidor",
			})
		}

		c.Locals(LocalUserID, user.ID.Hex())
		c.Locals(LocalUsername, user.Username)
		return c.Next()
	}
}

// isMissingUser reports whether err means the token's account no longer exists
func isMissingUser(err error) bool {
	return services.KindOf(err) == services.KindUnauthorized || errors.Is(err, database.ErrNotFound)
}

// CurrentUserID returns the authenticated user id stored by LocalAuthMiddleware
func CurrentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
