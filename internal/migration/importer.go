package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tasktracker/internal/database"
	"tasktracker/internal/logging"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
	"tasktracker/pkg/auth"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/time/rate"
)

// Collection names used in summaries and metrics, in import order
const (
	CollectionUsers         = "users"
	CollectionProjects      = "projects"
	CollectionTasks         = "tasks"
	CollectionComments      = "comments"
	CollectionHistory       = "history"
	CollectionNotifications = "notifications"
)

// Collections lists the collections in the order they are imported
var Collections = []string{
	CollectionUsers,
	CollectionProjects,
	CollectionTasks,
	CollectionComments,
	CollectionHistory,
	CollectionNotifications,
}

// Repositories are the stores an import writes to
type Repositories struct {
	Users         services.UserRepository
	Projects      services.ProjectRepository
	Tasks         services.TaskRepository
	Comments      services.CommentRepository
	History       services.HistoryRepository
	Notifications services.NotificationRepository
}

// Options tune an import run
type Options struct {
	// WritesPerSecond throttles store writes; zero means unlimited
	WritesPerSecond float64
	Metrics         *services.Metrics
}

// Counts is the outcome for one collection
type Counts struct {
	Imported int
	Skipped  int
}

// Summary is the outcome of an import run
type Summary struct {
	RunID    string
	Counts   map[string]*Counts
	Warnings []string
}

func newSummary(runID string) *Summary {
	s := &Summary{RunID: runID, Counts: make(map[string]*Counts, len(Collections))}
	for _, c := range Collections {
		s.Counts[c] = &Counts{}
	}
	return s
}

// Importer maps a legacy dump onto new records. Every legacy id is
// remapped to the ObjectID of the record created for it; references that
// do not resolve are cleared or cause the record to be skipped.
type Importer struct {
	repos   Repositories
	metrics *services.Metrics
	limiter *rate.Limiter
}

// NewImporter creates a new importer
func NewImporter(repos Repositories, opts Options) *Importer {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.WritesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.WritesPerSecond), 1)
	}
	return &Importer{
		repos:   repos,
		metrics: opts.Metrics,
		limiter: limiter,
	}
}

// run holds the id maps of a single import
type run struct {
	*Importer
	summary   *Summary
	logger    *slog.Logger
	users     map[int64]primitive.ObjectID
	projects  map[int64]primitive.ObjectID
	tasks     map[int64]primitive.ObjectID
	firstUser *primitive.ObjectID
}

// Run imports d. Store failures abort the run; the returned summary
// describes what was written before the failure.
func (im *Importer) Run(ctx context.Context, d *Dump) (*Summary, error) {
	runID := uuid.NewString()
	r := &run{
		Importer: im,
		summary:  newSummary(runID),
		logger:   logging.WithImport(runID),
		users:    make(map[int64]primitive.ObjectID),
		projects: make(map[int64]primitive.ObjectID),
		tasks:    make(map[int64]primitive.ObjectID),
	}

	r.logger.Info("legacy import started",
		"users", len(d.Users), "projects", len(d.Projects), "tasks", len(d.Tasks),
		"comments", len(d.Comments), "history", len(d.History), "notifications", len(d.Notifications))

	steps := []func(context.Context, *Dump) error{
		r.importUsers,
		r.importProjects,
		r.importTasks,
		r.importComments,
		r.importHistory,
		r.importNotifications,
	}
	for _, step := range steps {
		if err := step(ctx, d); err != nil {
			return r.summary, err
		}
	}

	r.logger.Info("legacy import finished", "warnings", len(r.summary.Warnings))
	return r.summary, nil
}

func (r *run) imported(collection string) {
	r.summary.Counts[collection].Imported++
	r.metrics.RecordImport(collection, false)
}

func (r *run) skip(collection string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.summary.Counts[collection].Skipped++
	r.summary.Warnings = append(r.summary.Warnings, collection+": "+msg)
	r.metrics.RecordImport(collection, true)
	r.logger.Warn("legacy record skipped", "collection", collection, "reason", msg)
}

func (r *run) warn(collection string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.summary.Warnings = append(r.summary.Warnings, collection+": "+msg)
	r.logger.Warn("legacy record adjusted", "collection", collection, "reason", msg)
}

func (r *run) wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

func (r *run) importUsers(ctx context.Context, d *Dump) error {
	for _, u := range d.Users {
		username := u.Username.Trimmed()
		if username == "" {
			r.skip(CollectionUsers, "user %s has no username", u.ID)
			continue
		}

		// a user that already exists (earlier import, seed) is reused
		existing, err := r.repos.Users.GetByUsername(ctx, username)
		if err == nil {
			r.mapUser(u.ID, existing.ID)
			r.warn(CollectionUsers, "user %s (%s) already exists, reusing it", u.ID, username)
			continue
		}
		if !errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("failed to look up user %s: %w", username, err)
		}

		hash, err := auth.HashPassword(u.Password.String())
		if err != nil {
			return err
		}
		if err := r.wait(ctx); err != nil {
			return err
		}
		user := &models.User{ID: primitive.NewObjectID(), Username: username, PasswordHash: hash}
		if err := r.repos.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to import user %s: %w", username, err)
		}
		r.mapUser(u.ID, user.ID)
		r.imported(CollectionUsers)
	}
	return nil
}

func (r *run) mapUser(legacy LegacyID, id primitive.ObjectID) {
	if legacy.Valid {
		r.users[legacy.Value] = id
	}
	if r.firstUser == nil {
		r.firstUser = &id
	}
}

func (r *run) importProjects(ctx context.Context, d *Dump) error {
	for _, p := range d.Projects {
		name := p.Name.Trimmed()
		if name == "" {
			r.skip(CollectionProjects, "project %s has no name", p.ID)
			continue
		}

		if err := r.wait(ctx); err != nil {
			return err
		}
		project := &models.Project{
			ID:          primitive.NewObjectID(),
			Name:        name,
			Description: p.Description.String(),
		}
		if err := r.repos.Projects.Create(ctx, project); err != nil {
			return fmt.Errorf("failed to import project %s: %w", p.ID, err)
		}
		if p.ID.Valid {
			r.projects[p.ID.Value] = project.ID
		}
		r.imported(CollectionProjects)
	}
	return nil
}

func (r *run) importTasks(ctx context.Context, d *Dump) error {
	for _, t := range d.Tasks {
		title := t.Title.Trimmed()
		if title == "" {
			r.skip(CollectionTasks, "task %s has no title", t.ID)
			continue
		}

		createdBy, ok := r.lookup(r.users, t.CreatedBy)
		if !ok {
			if r.firstUser == nil {
				r.skip(CollectionTasks, "task %s (%s) has no creator and the dump has no users", t.ID, title)
				continue
			}
			createdBy = *r.firstUser
		}

		task := &models.Task{
			ID:             primitive.NewObjectID(),
			Title:          title,
			Description:    t.Description.String(),
			Status:         models.TaskStatusPending,
			Priority:       models.TaskPriorityMedium,
			DueDate:        t.DueDate.String(),
			EstimatedHours: t.EstimatedHours.Hours(),
			ActualHours:    t.ActualHours.Hours(),
			CreatedBy:      createdBy,
			CreatedAt:      parseTime(t.CreatedAt),
		}
		if status := models.TaskStatus(t.Status.String()); status.IsValid() {
			task.Status = status
		}
		if priority := models.TaskPriority(t.Priority.String()); priority.IsValid() {
			task.Priority = priority
		}
		if id, ok := r.lookup(r.projects, t.ProjectID); ok {
			task.ProjectID = &id
		} else if t.ProjectID.Valid {
			r.warn(CollectionTasks, "task %s references unknown project %s, cleared", t.ID, t.ProjectID)
		}
		if id, ok := r.lookup(r.users, t.AssignedTo); ok {
			task.AssignedTo = &id
		} else if t.AssignedTo.Valid {
			r.warn(CollectionTasks, "task %s references unknown assignee %s, cleared", t.ID, t.AssignedTo)
		}

		if err := r.wait(ctx); err != nil {
			return err
		}
		if err := r.repos.Tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("failed to import task %s: %w", t.ID, err)
		}
		if t.ID.Valid {
			r.tasks[t.ID.Value] = task.ID
		}
		r.imported(CollectionTasks)
	}
	return nil
}

func (r *run) importComments(ctx context.Context, d *Dump) error {
	for _, c := range d.Comments {
		taskID, okTask := r.lookup(r.tasks, c.TaskID)
		userID, okUser := r.lookup(r.users, c.UserID)
		if !okTask || !okUser {
			r.skip(CollectionComments, "comment %s references task %s / user %s that were not imported", c.ID, c.TaskID, c.UserID)
			continue
		}
		text := c.CommentText.Trimmed()
		if text == "" {
			r.skip(CollectionComments, "comment %s is empty", c.ID)
			continue
		}

		if err := r.wait(ctx); err != nil {
			return err
		}
		comment := &models.Comment{
			ID:          primitive.NewObjectID(),
			TaskID:      taskID,
			UserID:      userID,
			CommentText: text,
			CreatedAt:   parseTime(c.CreatedAt),
		}
		if err := r.repos.Comments.Create(ctx, comment); err != nil {
			return fmt.Errorf("failed to import comment %s: %w", c.ID, err)
		}
		r.imported(CollectionComments)
	}
	return nil
}

func (r *run) importHistory(ctx context.Context, d *Dump) error {
	for _, h := range d.History {
		taskID, okTask := r.lookup(r.tasks, h.TaskID)
		userID, okUser := r.lookup(r.users, h.UserID)
		if !okTask || !okUser {
			r.skip(CollectionHistory, "entry %s references task %s / user %s that were not imported", h.ID, h.TaskID, h.UserID)
			continue
		}

		action := models.HistoryAction(h.Action.String())
		if !action.IsValid() {
			action = models.HistoryActionCreated
		}

		if err := r.wait(ctx); err != nil {
			return err
		}
		entry := &models.HistoryEntry{
			ID:        primitive.NewObjectID(),
			TaskID:    taskID,
			UserID:    userID,
			Action:    action,
			OldValue:  h.OldValue.String(),
			NewValue:  h.NewValue.String(),
			Timestamp: parseTime(h.Timestamp),
		}
		if err := r.repos.History.Append(ctx, entry); err != nil {
			return fmt.Errorf("failed to import history entry %s: %w", h.ID, err)
		}
		r.imported(CollectionHistory)
	}
	return nil
}

func (r *run) importNotifications(ctx context.Context, d *Dump) error {
	for _, n := range d.Notifications {
		userID, ok := r.lookup(r.users, n.UserID)
		if !ok {
			r.skip(CollectionNotifications, "notification %s references user %s that was not imported", n.ID, n.UserID)
			continue
		}

		kind := models.NotificationType(n.Type.String())
		if !kind.IsValid() {
			kind = models.NotificationTaskUpdated
		}

		if err := r.wait(ctx); err != nil {
			return err
		}
		notification := &models.Notification{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Message:   n.Message.String(),
			Type:      kind,
			Read:      truthy(n.Read),
			CreatedAt: parseTime(n.CreatedAt),
		}
		if err := r.repos.Notifications.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to import notification %s: %w", n.ID, err)
		}
		r.imported(CollectionNotifications)
	}
	return nil
}

func (r *run) lookup(ids map[int64]primitive.ObjectID, legacy LegacyID) (primitive.ObjectID, bool) {
	if !legacy.Valid {
		return primitive.NilObjectID, false
	}
	id, ok := ids[legacy.Value]
	return id, ok
}

// parseTime reads a legacy timestamp. Unparsable or missing values yield
// the zero time, which the stores replace with the current time.
func parseTime(f models.Field) (t time.Time) {
	value := f.Trimmed()
	if value == "" {
		return time.Time{}
	}
	defer func() {
		if recover() != nil {
			t = time.Time{}
		}
	}()
	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

func truthy(f models.Field) bool {
	if !f.Provided() {
		return false
	}
	switch strings.ToLower(f.Trimmed()) {
	case "", "false", "0":
		return false
	}
	return true
}
