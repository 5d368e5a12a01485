package handlers

import (
	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CommentHandler serves task comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListByTask returns a task's comments
// GET /api/comments/task/:taskId
func (h *CommentHandler) ListByTask(c *fiber.Ctx) error {
	comments, err := h.commentService.ListByTask(c.UserContext(), c.Params("taskId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// Create adds a comment by the current user
// POST /api/comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	author, err := actorID(c)
	if err != nil {
		return respondError(c, err)
	}

	var in models.CommentInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	comment, err := h.commentService.Create(c.UserContext(), author, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
