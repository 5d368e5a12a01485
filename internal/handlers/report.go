package handlers

import (
	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves text reports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Generate builds a report
// GET /api/reports/:type
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	report, err := h.reportService.Generate(c.UserContext(), c.Params("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
