package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"tasktracker/internal/database"
	"tasktracker/internal/models"
	"tasktracker/pkg/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService handles accounts and credential checks
type UserService struct {
	users   UserRepository
	jwtAuth *auth.LocalJWTAuth
}

// NewUserService creates a new user service
func NewUserService(users UserRepository, jwtAuth *auth.LocalJWTAuth) *UserService {
	return &UserService{
		users:   users,
		jwtAuth: jwtAuth,
	}
}

// Register creates an account and signs a token for it
func (s *UserService) Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, ErrCredentialsRequired
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	user, err := s.CreateUser(ctx, username, creds.Password)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s (%s)", user.Username, user.ID.Hex())
	return s.issue(user)
}

// CreateUser hashes password and stores a new user
func (s *UserService) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and signs a token
func (s *UserService) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, creds.Password) {
		log.Printf("⚠️ Failed login attempt for user: %s", username)
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetByID loads a user by hex id
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := models.ParseObjectID(id)
	if !ok {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns every user, sorted by username, without password hashes
func (s *UserService) List(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, nil
}

func (s *UserService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := s.jwtAuth.GenerateToken(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &models.AuthResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
