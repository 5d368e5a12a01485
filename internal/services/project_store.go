package services

import (
	"context"
	"fmt"
	"time"

	"tasktracker/internal/database"
	"tasktracker/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectStore handles MongoDB CRUD for projects
type ProjectStore struct {
	collection *mongo.Collection
}

// NewProjectStore creates a new project store
func NewProjectStore(mongodb *database.MongoDB) *ProjectStore {
	return &ProjectStore{
		collection: mongodb.Collection(database.CollectionProjects),
	}
}

// Create inserts a new project
func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}

	if _, err := s.collection.InsertOne(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", database.MapError(err))
	}
	return nil
}

// GetByID retrieves a project by ID
func (s *ProjectStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByName retrieves the first project with the given name
func (s *ProjectStore) GetByName(ctx context.Context, name string) (*models.Project, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *ProjectStore) findOne(ctx context.Context, filter bson.M) (*models.Project, error) {
	var project models.Project
	if err := s.collection.FindOne(ctx, filter).Decode(&project); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", database.MapError(err))
	}
	return &project, nil
}

// GetByIDs retrieves the projects that exist among ids
func (s *ProjectStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

// Update replaces a project document
func (s *ProjectStore) Update(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()
	result, err := s.collection.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", database.MapError(err))
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("failed to update project: %w", database.ErrNotFound)
	}
	return nil
}

// Delete removes a project. Tasks referencing it are left untouched.
func (s *ProjectStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete project: %w", database.ErrNotFound)
	}
	return nil
}

// List returns all projects, oldest first
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
}

func (s *ProjectStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Project, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}
