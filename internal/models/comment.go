package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is an immutable note left on a task
type Comment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID      primitive.ObjectID `bson:"taskId" json:"taskId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	CommentText string             `bson:"commentText" json:"commentText"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CommentInput is the body of a create comment request
type CommentInput struct {
	TaskID      string `json:"taskId"`
	CommentText Field  `json:"commentText"`
}

// CommentResponse is a comment with its author resolved
type CommentResponse struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	UserID      *string   `json:"userId"`
	Username    *string   `json:"username"`
	CommentText string    `json:"commentText"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse renders the comment; author is nil when it no longer resolves
func (c *Comment) ToResponse(author *User) CommentResponse {
	resp := CommentResponse{
		ID:          c.ID.Hex(),
		TaskID:      c.TaskID.Hex(),
		CommentText: c.CommentText,
		CreatedAt:   c.CreatedAt,
	}
	if author != nil {
		id, name := author.ID.Hex(), author.Username
		resp.UserID = &id
		resp.Username = &name
	}
	return resp
}
