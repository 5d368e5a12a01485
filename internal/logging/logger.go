package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequestIDKey is the Fiber locals key holding the request id
const RequestIDKey = "requestid"

// Init configures the global slog logger.
// In production it uses JSON output for log aggregation.
// Otherwise it uses the human-readable text handler.
func Init(environment string) {
	slog.SetDefault(New(os.Stdout, environment))
}

// New builds a logger writing to w with the handler for environment
func New(w io.Writer, environment string) *slog.Logger {
	var handler slog.Handler
	if strings.ToLower(environment) == "production" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(handler)
}

// FromRequest returns a logger carrying the request id, method, path and
// authenticated user of c.
func FromRequest(c *fiber.Ctx) *slog.Logger {
	logger := slog.With(
		"request_id", c.Locals(RequestIDKey),
		"method", c.Method(),
		"path", c.Path(),
	)
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		logger = logger.With("user_id", userID)
	}
	return logger
}

// WithTask returns a logger scoped to a task write operation
func WithTask(operation, taskID string) *slog.Logger {
	return slog.With(
		"operation", operation,
		"task_id", taskID,
	)
}

// WithImport returns a logger scoped to a legacy import run
func WithImport(runID string) *slog.Logger {
	return slog.With("import_run", runID)
}
