package services

import (
	"context"

	"tasktracker/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentService adds and lists task comments
type CommentService struct {
	comments CommentRepository
	resolver *ReferenceResolver
}

// NewCommentService creates a new comment service
func NewCommentService(comments CommentRepository, resolver *ReferenceResolver) *CommentService {
	return &CommentService{
		comments: comments,
		resolver: resolver,
	}
}

// ListByTask returns a task's comments oldest first
func (s *CommentService) ListByTask(ctx context.Context, taskID string) ([]models.CommentResponse, error) {
	oid, ok := models.ParseObjectID(taskID)
	if !ok {
		return nil, ErrTaskIDRequired
	}
	comments, err := s.comments.ListByTask(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.resolver.Comments(ctx, comments)
}

// Create stores a comment by author. The task is referenced by id only
// and is not required to exist.
func (s *CommentService) Create(ctx context.Context, author primitive.ObjectID, in models.CommentInput) (*models.CommentResponse, error) {
	taskID, ok := models.ParseObjectID(in.TaskID)
	if !ok {
		return nil, ErrTaskIDRequired
	}
	text := in.CommentText.Trimmed()
	if text == "" {
		return nil, ErrCommentEmpty
	}

	comment := &models.Comment{
		ID:          primitive.NewObjectID(),
		TaskID:      taskID,
		UserID:      author,
		CommentText: text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	resp, err := s.resolver.Comments(ctx, []models.Comment{*comment})
	if err != nil {
		return nil, err
	}
	return &resp[0], nil
}
