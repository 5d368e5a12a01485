package services

import (
	"context"
	"errors"

	"tasktracker/internal/database"
	"tasktracker/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectService manages projects. Deleting a project leaves its tasks
// pointing at it; readers treat such references as absent.
type ProjectService struct {
	projects ProjectRepository
}

// NewProjectService creates a new project service
func NewProjectService(projects ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// List returns all projects, oldest first
func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.List(ctx)
}

// Create adds a project; the name is required
func (s *ProjectService) Create(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	name := in.Name.Trimmed()
	if name == "" {
		return nil, ErrNameRequired
	}

	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: in.Description.String(),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update changes the present fields of a project
func (s *ProjectService) Update(ctx context.Context, id string, in models.ProjectInput) (*models.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name.Provided() {
		name := in.Name.Trimmed()
		if name == "" {
			return nil, ErrNameRequired
		}
		project.Name = name
	}
	if in.Description.Provided() {
		project.Description = in.Description.String()
	}

	if err := s.projects.Update(ctx, project); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return ErrProjectNotFound
	}
	if err := s.projects.Delete(ctx, oid); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}

func (s *ProjectService) load(ctx context.Context, id string) (*models.Project, error) {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return nil, ErrProjectNotFound
	}
	project, err := s.projects.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}
