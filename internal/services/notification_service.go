package services

import (
	"context"

	"tasktracker/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService reads and acknowledges a user's notifications
type NotificationService struct {
	notifications NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifications NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Unread returns the user's unread notifications, newest first
func (s *NotificationService) Unread(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.notifications.ListUnread(ctx, userID)
}

// MarkAllRead marks every notification of the user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
