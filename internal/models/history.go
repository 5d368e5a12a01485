package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryAction names the kind of change a history entry records
type HistoryAction string

const (
	HistoryActionCreated       HistoryAction = "CREATED"
	HistoryActionStatusChanged HistoryAction = "STATUS_CHANGED"
	HistoryActionTitleChanged  HistoryAction = "TITLE_CHANGED"
	HistoryActionDeleted       HistoryAction = "DELETED"
)

// IsValid reports whether a is a known action
func (a HistoryAction) IsValid() bool {
	switch a {
	case HistoryActionCreated, HistoryActionStatusChanged, HistoryActionTitleChanged, HistoryActionDeleted:
		return true
	}
	return false
}

// HistoryEntry is an append-only record of a change to a task.
// Entries outlive the task they describe.
type HistoryEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID    primitive.ObjectID `bson:"taskId" json:"taskId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Action    HistoryAction      `bson:"action" json:"action"`
	OldValue  string             `bson:"oldValue" json:"oldValue"`
	NewValue  string             `bson:"newValue" json:"newValue"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// HistoryResponse is a history entry with its actor resolved
type HistoryResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    *string   `json:"userId"`
	Username  *string   `json:"username"`
	Action    string    `json:"action"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	Timestamp time.Time `json:"timestamp"`
}

// ToResponse renders the entry; actor is nil when it no longer resolves
func (h *HistoryEntry) ToResponse(actor *User) HistoryResponse {
	resp := HistoryResponse{
		ID:        h.ID.Hex(),
		TaskID:    h.TaskID.Hex(),
		Action:    string(h.Action),
		OldValue:  h.OldValue,
		NewValue:  h.NewValue,
		Timestamp: h.Timestamp,
	}
	if actor != nil {
		id, name := actor.ID.Hex(), actor.Username
		resp.UserID = &id
		resp.Username = &name
	}
	return resp
}
