package handlers

import (
	"bytes"

	"tasktracker/internal/logging"
	"tasktracker/internal/middleware"
	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgInternal = "Error interno del servidor"
	msgBadBody  = "Cuerpo de la petición inválido"
)

// respondError writes err as {"error": message} with the status of its kind.
// Internal failures are logged and replaced by a generic message.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation, services.KindConflict:
		status = fiber.StatusBadRequest
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindUnauthorized:
		status = fiber.StatusUnauthorized
	default:
		logging.FromRequest(c).Error("request failed", "error", err)
		return c.Status(status).JSON(fiber.Map{"error": msgInternal})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgBadBody})
}

// parseBody decodes the JSON body into out. An empty body leaves out
// untouched, the same as {}.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

func ok(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// actorID returns the authenticated user as an ObjectID
func actorID(c *fiber.Ctx) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(middleware.CurrentUserID(c))
	if err != nil {
		return primitive.NilObjectID, services.ErrUserNotFound
	}
	return oid, nil
}
