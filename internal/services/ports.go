package services

import (
	"context"

	"tasktracker/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository interfaces. Lookups return database.ErrNotFound when the
// record does not exist and database.ErrDuplicateKey on unique violations.

// TaskRepository persists tasks
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	// Update replaces the stored task and refreshes UpdatedAt
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// List returns tasks matching filter, newest first
	List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	// ListAll returns every task in insertion order
	ListAll(ctx context.Context) ([]models.Task, error)
}

// ProjectRepository persists projects
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	GetByName(ctx context.Context, name string) (*models.Project, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// List returns projects oldest first
	List(ctx context.Context) ([]models.Project, error)
}

// UserRepository persists users
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	// List returns users sorted by username
	List(ctx context.Context) ([]models.User, error)
}

// CommentRepository persists comments
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	// ListByTask returns a task's comments oldest first
	ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error)
}

// HistoryRepository is the append-only task change log
type HistoryRepository interface {
	// Append stores entry, keeping a non-zero Timestamp as given
	Append(ctx context.Context, entry *models.HistoryEntry) error
	// ListByTask returns a task's entries oldest first
	ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.HistoryEntry, error)
	// ListRecent returns up to limit entries newest first
	ListRecent(ctx context.Context, limit int64) ([]models.HistoryEntry, error)
}

// NotificationRepository persists notifications
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// ListUnread returns a user's unread notifications newest first
	ListUnread(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID primitive.ObjectID) error
}
