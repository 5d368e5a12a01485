package services

import (
	"context"
	"fmt"
	"time"

	"tasktracker/internal/models"

	"github.com/patrickmn/go-cache"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferenceResolver turns stored references into display values. A
// reference that no longer resolves is reported as absent, never as an
// error. Users are immutable, so found users are cached; projects are not.
type ReferenceResolver struct {
	projects  ProjectRepository
	users     UserRepository
	userCache *cache.Cache
}

// NewReferenceResolver creates a resolver caching users for ttl
func NewReferenceResolver(projects ProjectRepository, users UserRepository, ttl time.Duration) *ReferenceResolver {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ReferenceResolver{
		projects:  projects,
		users:     users,
		userCache: cache.New(ttl, 2*ttl),
	}
}

// Users looks up the users among ids that exist
func (r *ReferenceResolver) Users(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	found := make(map[primitive.ObjectID]*models.User, len(ids))
	var missing []primitive.ObjectID
	seen := make(map[primitive.ObjectID]bool, len(ids))

	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		if cached, ok := r.userCache.Get(id.Hex()); ok {
			user := cached.(models.User)
			found[id] = &user
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return found, nil
	}

	users, err := r.users.GetByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}
	for i := range users {
		user := users[i]
		user.PasswordHash = ""
		r.userCache.SetDefault(user.ID.Hex(), user)
		found[user.ID] = &user
	}
	return found, nil
}

// Projects looks up the projects among ids that exist
func (r *ReferenceResolver) Projects(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Project, error) {
	found := make(map[primitive.ObjectID]*models.Project, len(ids))
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return found, nil
	}

	projects, err := r.projects.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve projects: %w", err)
	}
	for i := range projects {
		project := projects[i]
		found[project.ID] = &project
	}
	return found, nil
}

// Tasks renders tasks with their project, assignee and creator resolved
func (r *ReferenceResolver) Tasks(ctx context.Context, tasks []models.Task) ([]models.TaskResponse, error) {
	var projectIDs, userIDs []primitive.ObjectID
	for i := range tasks {
		if tasks[i].ProjectID != nil {
			projectIDs = append(projectIDs, *tasks[i].ProjectID)
		}
		if tasks[i].AssignedTo != nil {
			userIDs = append(userIDs, *tasks[i].AssignedTo)
		}
		userIDs = append(userIDs, tasks[i].CreatedBy)
	}

	projects, err := r.Projects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	users, err := r.Users(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]models.TaskResponse, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		var project *models.Project
		var assignee *models.User
		if t.ProjectID != nil {
			project = projects[*t.ProjectID]
		}
		if t.AssignedTo != nil {
			assignee = users[*t.AssignedTo]
		}
		responses = append(responses, t.ToResponse(project, assignee, users[t.CreatedBy]))
	}
	return responses, nil
}

// Task renders a single task
func (r *ReferenceResolver) Task(ctx context.Context, task *models.Task) (*models.TaskResponse, error) {
	responses, err := r.Tasks(ctx, []models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// Comments renders comments with their authors resolved
func (r *ReferenceResolver) Comments(ctx context.Context, comments []models.Comment) ([]models.CommentResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].UserID)
	}
	users, err := r.Users(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToResponse(users[comments[i].UserID]))
	}
	return responses, nil
}

// History renders history entries with their actors resolved
func (r *ReferenceResolver) History(ctx context.Context, entries []models.HistoryEntry) ([]models.HistoryResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(entries))
	for i := range entries {
		ids = append(ids, entries[i].UserID)
	}
	users, err := r.Users(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]models.HistoryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, entries[i].ToResponse(users[entries[i].UserID]))
	}
	return responses, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
