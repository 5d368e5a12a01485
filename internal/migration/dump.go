// Package migration imports legacy flat-file dumps into the document store.
package migration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tasktracker/internal/models"
)

// LegacyID is a numeric identifier from the legacy dump. Dumps written by
// different client versions store ids as numbers or numeric strings.
type LegacyID struct {
	Value int64
	Valid bool
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything else
// decodes as an invalid id rather than failing the whole dump.
func (id *LegacyID) UnmarshalJSON(data []byte) error {
	*id = LegacyID{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || n != float64(int64(n)) {
		return nil
	}
	id.Value = int64(n)
	id.Valid = true
	return nil
}

func (id LegacyID) String() string {
	if !id.Valid {
		return "<none>"
	}
	return strconv.FormatInt(id.Value, 10)
}

// Dump is the legacy export document
type Dump struct {
	Users         []LegacyUser         `json:"users"`
	Projects      []LegacyProject      `json:"projects"`
	Tasks         []LegacyTask         `json:"tasks"`
	Comments      []LegacyComment      `json:"comments"`
	History       []LegacyHistory      `json:"history"`
	Notifications []LegacyNotification `json:"notifications"`
}

type LegacyUser struct {
	ID       LegacyID     `json:"id"`
	Username models.Field `json:"username"`
	Password models.Field `json:"password"`
}

type LegacyProject struct {
	ID          LegacyID     `json:"id"`
	Name        models.Field `json:"name"`
	Description models.Field `json:"description"`
}

type LegacyTask struct {
	ID             LegacyID     `json:"id"`
	Title          models.Field `json:"title"`
	Description    models.Field `json:"description"`
	Status         models.Field `json:"status"`
	Priority       models.Field `json:"priority"`
	ProjectID      LegacyID     `json:"projectId"`
	AssignedTo     LegacyID     `json:"assignedTo"`
	DueDate        models.Field `json:"dueDate"`
	EstimatedHours models.Field `json:"estimatedHours"`
	ActualHours    models.Field `json:"actualHours"`
	CreatedBy      LegacyID     `json:"createdBy"`
	CreatedAt      models.Field `json:"createdAt"`
	UpdatedAt      models.Field `json:"updatedAt"`
}

type LegacyComment struct {
	ID          LegacyID     `json:"id"`
	TaskID      LegacyID     `json:"taskId"`
	UserID      LegacyID     `json:"userId"`
	CommentText models.Field `json:"commentText"`
	CreatedAt   models.Field `json:"createdAt"`
}

type LegacyHistory struct {
	ID        LegacyID     `json:"id"`
	TaskID    LegacyID     `json:"taskId"`
	UserID    LegacyID     `json:"userId"`
	Action    models.Field `json:"action"`
	OldValue  models.Field `json:"oldValue"`
	NewValue  models.Field `json:"newValue"`
	Timestamp models.Field `json:"timestamp"`
}

type LegacyNotification struct {
	ID        LegacyID     `json:"id"`
	UserID    LegacyID     `json:"userId"`
	Message   models.Field `json:"message"`
	Type      models.Field `json:"type"`
	Read      models.Field `json:"read"`
	CreatedAt models.Field `json:"createdAt"`
}

// ReadDump decodes a dump. Missing arrays are treated as empty.
func ReadDump(r io.Reader) (*Dump, error) {
	var d Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("invalid dump: %w", err)
	}
	return &d, nil
}

// LoadDump reads a dump file
func LoadDump(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}
	defer f.Close()
	return ReadDump(f)
}
