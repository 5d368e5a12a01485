package handlers

import (
	"bytes"

	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams filtered task lists as files
type ExportHandler struct {
	taskService *services.TaskService
}

// NewExportHandler creates a new export handler
func NewExportHandler(taskService *services.TaskService) *ExportHandler {
	return &ExportHandler{taskService: taskService}
}

// CSV exports the tasks matching the query filters
// GET /api/tasks.csv, GET /api/export/tasks/csv
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	tasks, err := h.taskService.List(c.UserContext(), filterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := services.WriteTasksCSV(&buf, tasks); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=tasks.csv")
	return c.Send(buf.Bytes())
}

// XLSX exports the same rows as CSV into a workbook
// GET /api/export/tasks/xlsx
func (h *ExportHandler) XLSX(c *fiber.Ctx) error {
	tasks, err := h.taskService.List(c.UserContext(), filterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	if err := services.WriteTasksXLSX(&buf, tasks); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=tasks.xlsx")
	return c.Send(buf.Bytes())
}
