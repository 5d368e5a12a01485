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

// CommentStore handles MongoDB persistence for comments
type CommentStore struct {
	collection *mongo.Collection
}

// NewCommentStore creates a new comment store
func NewCommentStore(mongodb *database.MongoDB) *CommentStore {
	return &CommentStore{
		collection: mongodb.Collection(database.CollectionComments),
	}
}

// Create inserts a comment
func (s *CommentStore) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByTask returns the comments of a task, oldest first
func (s *CommentStore) ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"taskId": taskID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}
