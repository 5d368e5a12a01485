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

// HistoryStore is the MongoDB-backed task change log
type HistoryStore struct {
	collection *mongo.Collection
}

// NewHistoryStore creates a new history store
func NewHistoryStore(mongodb *database.MongoDB) *HistoryStore {
	return &HistoryStore{
		collection: mongodb.Collection(database.CollectionHistory),
	}
}

// Append inserts an entry. Entries are never updated or deleted.
func (s *HistoryStore) Append(ctx context.Context, entry *models.HistoryEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// ListByTask returns a task's entries, oldest first
func (s *HistoryStore) ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	return s.find(ctx, bson.M{"taskId": taskID}, opts)
}

// ListRecent returns the latest entries across all tasks
func (s *HistoryStore) ListRecent(ctx context.Context, limit int64) ([]models.HistoryEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, bson.M{}, opts)
}

func (s *HistoryStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.HistoryEntry, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.HistoryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}
