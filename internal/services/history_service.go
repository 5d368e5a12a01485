package services

import (
	"context"

	"tasktracker/internal/models"
)

// RecentHistoryLimit caps the global history listing
const RecentHistoryLimit = 100

// HistoryService reads the task change log
type HistoryService struct {
	history  HistoryRepository
	resolver *ReferenceResolver
}

// NewHistoryService creates a new history service
func NewHistoryService(history HistoryRepository, resolver *ReferenceResolver) *HistoryService {
	return &HistoryService{
		history:  history,
		resolver: resolver,
	}
}

// ListByTask returns a task's entries oldest first, including entries of
// deleted tasks
func (s *HistoryService) ListByTask(ctx context.Context, taskID string) ([]models.HistoryResponse, error) {
	oid, ok := models.ParseObjectID(taskID)
	if !ok {
		return nil, ErrTaskIDRequired
	}
	entries, err := s.history.ListByTask(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.resolver.History(ctx, entries)
}

// Recent returns the latest entries across all tasks, newest first
func (s *HistoryService) Recent(ctx context.Context) ([]models.HistoryResponse, error) {
	entries, err := s.history.ListRecent(ctx, RecentHistoryLimit)
	if err != nil {
		return nil, err
	}
	return s.resolver.History(ctx, entries)
}
