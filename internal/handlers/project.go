package handlers

import (
	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler serves project CRUD
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List returns all projects
// GET /api/projects
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projectService.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

// Create adds a project
// POST /api/projects
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in models.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	project, err := h.projectService.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// Update changes a project's name or description
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in models.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	project, err := h.projectService.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

// Delete removes a project
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.projectService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c)
}
