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

// UserStore handles MongoDB persistence for users
type UserStore struct {
	collection *mongo.Collection
}

// NewUserStore creates a new user store
func NewUserStore(mongodb *database.MongoDB) *UserStore {
	return &UserStore{
		collection: mongodb.Collection(database.CollectionUsers),
	}
}

// Create inserts a new user; a taken username yields database.ErrDuplicateKey
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", database.MapError(err))
	}
	return nil
}

// GetByID retrieves a user by ID
func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByUsername retrieves a user by username
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", database.MapError(err))
	}
	return &user, nil
}

// GetByIDs retrieves the users that exist among ids
func (s *UserStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

// List returns all users sorted by username
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	return s.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
}

func (s *UserStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
