// Package seed creates the default accounts and projects.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"tasktracker/internal/database"
	"tasktracker/internal/models"
	"tasktracker/internal/services"
	"tasktracker/pkg/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

// File is the YAML seed document
type File struct {
	Users    []UserSeed    `yaml:"users"`
	Projects []ProjectSeed `yaml:"projects"`
}

// UserSeed is an account to create
type UserSeed struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ProjectSeed is a project to create
type ProjectSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Default returns the built-in seed data
func Default() *File {
	return &File{
		Users: []UserSeed{
			{Username: "admin", Password: "admin"},
			{Username: "user1", Password: "user1"},
			{Username: "user2", Password: "user2"},
		},
		Projects: []ProjectSeed{
			{Name: "Proyecto Demo", Description: "Proyecto de ejemplo"},
			{Name: "Proyecto Alpha", Description: "Proyecto importante"},
			{Name: "Proyecto Beta", Description: "Proyecto secundario"},
		},
	}
}

// Load reads a seed file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed document
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, u := range f.Users {
		if strings.TrimSpace(u.Username) == "" || u.Password == "" {
			return nil, fmt.Errorf("seed user %d: username and password are required", i+1)
		}
	}
	for i, p := range f.Projects {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("seed project %d: name is required", i+1)
		}
	}
	return &f, nil
}

// Result counts what a seeding run did
type Result struct {
	UsersCreated    int
	UsersSkipped    int
	ProjectsCreated int
	ProjectsSkipped int
}

// Seeder applies seed files. Existing usernames and project names are left
// untouched, so running it twice is harmless.
type Seeder struct {
	users    services.UserRepository
	projects services.ProjectRepository
}

// NewSeeder creates a new seeder
func NewSeeder(users services.UserRepository, projects services.ProjectRepository) *Seeder {
	return &Seeder{users: users, projects: projects}
}

// Apply creates the missing users and projects of f
func (s *Seeder) Apply(ctx context.Context, f *File) (*Result, error) {
	var res Result

	log.Println("🌱 Creating default users...")
	for _, u := range f.Users {
		username := strings.TrimSpace(u.Username)
		exists, err := s.userExists(ctx, username)
		if err != nil {
			return nil, err
		}
		if exists {
			log.Printf("   User %s already exists", username)
			res.UsersSkipped++
			continue
		}

		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return nil, err
		}
		user := &models.User{ID: primitive.NewObjectID(), Username: username, PasswordHash: hash}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", username, err)
		}
		log.Printf("   Created user: %s", username)
		res.UsersCreated++
	}

	log.Println("🌱 Creating default projects...")
	for _, p := range f.Projects {
		name := strings.TrimSpace(p.Name)
		exists, err := s.projectExists(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			log.Printf("   Project %s already exists", name)
			res.ProjectsSkipped++
			continue
		}

		project := &models.Project{ID: primitive.NewObjectID(), Name: name, Description: p.Description}
		if err := s.projects.Create(ctx, project); err != nil {
			return nil, fmt.Errorf("failed to create project %s: %w", name, err)
		}
		log.Printf("   Created project: %s", name)
		res.ProjectsCreated++
	}

	return &res, nil
}

func (s *Seeder) userExists(ctx context.Context, username string) (bool, error) {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Seeder) projectExists(ctx context.Context, name string) (bool, error) {
	_, err := s.projects.GetByName(ctx, name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return false, err
}
