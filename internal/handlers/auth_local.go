package handlers

import (
	"tasktracker/internal/middleware"
	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LocalAuthHandler handles registration, login and the current user
type LocalAuthHandler struct {
	userService *services.UserService
}

// NewLocalAuthHandler creates a new local auth handler
func NewLocalAuthHandler(userService *services.UserService) *LocalAuthHandler {
	return &LocalAuthHandler{userService: userService}
}

// Register creates a new user account
// POST /api/auth/register
func (h *LocalAuthHandler) Register(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return badBody(c)
	}

	resp, err := h.userService.Register(c.UserContext(), creds)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login verifies credentials and issues a token
// POST /api/auth/login
func (h *LocalAuthHandler) Login(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return badBody(c)
	}

	resp, err := h.userService.Login(c.UserContext(), creds)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *LocalAuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.userService.GetByID(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user.ToResponse()})
}
