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

// NotificationStore handles MongoDB persistence for notifications
type NotificationStore struct {
	collection *mongo.Collection
}

// NewNotificationStore creates a new notification store
func NewNotificationStore(mongodb *database.MongoDB) *NotificationStore {
	return &NotificationStore{
		collection: mongodb.Collection(database.CollectionNotifications),
	}
}

// Create inserts a notification
func (s *NotificationStore) Create(ctx context.Context, notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListUnread returns the unread notifications of a user, newest first
func (s *NotificationStore) ListUnread(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID, "read": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// MarkAllRead flags every notification of a user as read
func (s *NotificationStore) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.collection.UpdateMany(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
