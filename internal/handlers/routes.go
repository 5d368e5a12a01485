package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers groups every API handler
type Handlers struct {
	Auth          *LocalAuthHandler
	Tasks         *TaskHandler
	Export        *ExportHandler
	Projects      *ProjectHandler
	Comments      *CommentHandler
	History       *HistoryHandler
	Notifications *NotificationHandler
	Users         *UserHandler
	Reports       *ReportHandler
}

// RegisterRoutes mounts the API on api. requireAuth guards every route
// except login and register, which are guarded by authLimiter instead.
func RegisterRoutes(api fiber.Router, h *Handlers, requireAuth, authLimiter fiber.Handler) {
	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authLimiter, h.Auth.Register)
	authGroup.Post("/login", authLimiter, h.Auth.Login)
	authGroup.Get("/me", requireAuth, h.Auth.Me)

	// Tasks. Group middleware matches by prefix and would also run for
	// /tasks.csv, so auth is attached per route here.
	api.Get("/tasks.csv", requireAuth, h.Export.CSV)
	tasks := api.Group("/tasks")
	tasks.Get("/", requireAuth, h.Tasks.List)
	tasks.Get("/stats", requireAuth, h.Tasks.Stats)
	tasks.Get("/:id", requireAuth, h.Tasks.Get)
	tasks.Post("/", requireAuth, h.Tasks.Create)
	tasks.Put("/:id", requireAuth, h.Tasks.Update)
	tasks.Delete("/:id", requireAuth, h.Tasks.Delete)

	export := api.Group("/export", requireAuth)
	export.Get("/tasks/csv", h.Export.CSV)
	export.Get("/tasks/xlsx", h.Export.XLSX)

	projects := api.Group("/projects", requireAuth)
	projects.Get("/", h.Projects.List)
	projects.Post("/", h.Projects.Create)
	projects.Put("/:id", h.Projects.Update)
	projects.Delete("/:id", h.Projects.Delete)

	comments := api.Group("/comments", requireAuth)
	comments.Get("/task/:taskId", h.Comments.ListByTask)
	comments.Post("/", h.Comments.Create)

	history := api.Group("/history", requireAuth)
	history.Get("/", h.History.Recent)
	history.Get("/task/:taskId", h.History.ListByTask)

	notifications := api.Group("/notifications", requireAuth)
	notifications.Get("/", h.Notifications.Unread)
	notifications.Put("/read", h.Notifications.MarkAllRead)

	api.Get("/users", requireAuth, h.Users.List)
	api.Get("/reports/:type", requireAuth, h.Reports.Generate)
}
