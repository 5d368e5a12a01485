package handlers

import (
	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler serves the current user's notifications
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// Unread lists unread notifications
// GET /api/notifications
func (h *NotificationHandler) Unread(c *fiber.Ctx) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	notifications, err := h.notificationService.Unread(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

// MarkAllRead acknowledges every notification
// PUT /api/notifications/read
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.notificationService.MarkAllRead(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}
	return ok(c)
}
