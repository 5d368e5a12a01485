package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"tasktracker/internal/database"
	"tasktracker/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskStore handles MongoDB CRUD for tasks
type TaskStore struct {
	collection *mongo.Collection
}

// NewTaskStore creates a new task store
func NewTaskStore(mongodb *database.MongoDB) *TaskStore {
	return &TaskStore{
		collection: mongodb.Collection(database.CollectionTasks),
	}
}

// Create inserts a new task
func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}

	if _, err := s.collection.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", database.MapError(err))
	}
	return nil
}

// GetByID retrieves a task by ID
func (s *TaskStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, fmt.Errorf("failed to get task: %w", database.MapError(err))
	}
	return &task, nil
}

// Update replaces a task document
func (s *TaskStore) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now()
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", database.MapError(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("failed to update task: %w", database.ErrNotFound)
	}
	return nil
}

// Delete removes a task
func (s *TaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete task: %w", database.ErrNotFound)
	}
	return nil
}

// List returns tasks matching the filter, newest first
func (s *TaskStore) List(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return s.find(ctx, TaskFilterQuery(filter), opts)
}

// ListAll returns every task in insertion order
func (s *TaskStore) ListAll(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (s *TaskStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Task, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// TaskFilterQuery translates a filter into a MongoDB query. It must select
// exactly the tasks for which filter.Matches is true.
func TaskFilterQuery(filter models.TaskFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.ProjectID != nil {
		query["projectId"] = *filter.ProjectID
	}
	if filter.SearchText != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.SearchText), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return query
}
