package handlers

import (
	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TaskHandler serves task CRUD, search and stats
type TaskHandler struct {
	taskService   *services.TaskService
	reportService *services.ReportService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, reportService *services.ReportService) *TaskHandler {
	return &TaskHandler{
		taskService:   taskService,
		reportService: reportService,
	}
}

// filterFromQuery reads the shared task filter query parameters
func filterFromQuery(c *fiber.Ctx) models.TaskFilter {
	return models.ParseTaskFilter(
		c.Query("searchText"),
		c.Query("status"),
		c.Query("priority"),
		c.Query("projectId"),
	)
}

// List returns the tasks matching the query filters, newest first
// GET /api/tasks
func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.taskService.List(c.UserContext(), filterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

// Stats returns the dashboard counters
// GET /api/tasks/stats
func (h *TaskHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.reportService.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Get returns a single task
// GET /api/tasks/:id
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	task, err := h.taskService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// Create adds a task
// POST /api/tasks
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var in models.TaskInput
	if err := parseBody(c, &in); err != nil {
		return badBody(c)
	}

	task, err := h.taskService.Create(c.UserContext(), actor, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// Update applies a partial update
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var in models.TaskInput
	if err := parseBody(c, &in); err != nil {
		return badBody(c)
	}

	task, err := h.taskService.Update(c.UserContext(), actor, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

// Delete removes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.taskService.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c)
}
