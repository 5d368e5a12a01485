package handlers

import (
	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HistoryHandler serves the task change log
type HistoryHandler struct {
	historyService *services.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// Recent returns the latest entries across all tasks
// GET /api/history
func (h *HistoryHandler) Recent(c *fiber.Ctx) error {
	entries, err := h.historyService.Recent(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// ListByTask returns a task's entries
// GET /api/history/task/:taskId
func (h *HistoryHandler) ListByTask(c *fiber.Ctx) error {
	entries, err := h.historyService.ListByTask(c.UserContext(), c.Params("taskId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}
