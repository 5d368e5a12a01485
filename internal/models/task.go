package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus is the workflow state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pendiente"
	TaskStatusInProgress TaskStatus = "En Progreso"
	TaskStatusCompleted  TaskStatus = "Completada"
	TaskStatusBlocked    TaskStatus = "Bloqueada"
	TaskStatusCancelled  TaskStatus = "Cancelada"
)

// TaskStatuses lists every status in display order
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusBlocked,
	TaskStatusCancelled,
}

// IsValid reports whether s is one of the known statuses
func (s TaskStatus) IsValid() bool {
	for _, known := range TaskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// TaskPriority ranks how urgent a task is
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "Baja"
	TaskPriorityMedium   TaskPriority = "Media"
	TaskPriorityHigh     TaskPriority = "Alta"
	TaskPriorityCritical TaskPriority = "Crítica"
)

// TaskPriorities lists every priority in display order
var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityCritical,
}

// IsValid reports whether p is one of the known priorities
func (p TaskPriority) IsValid() bool {
	for _, known := range TaskPriorities {
		if p == known {
			return true
		}
	}
	return false
}

// IsHigh reports whether p counts as high priority in stats
func (p TaskPriority) IsHigh() bool {
	return p == TaskPriorityHigh || p == TaskPriorityCritical
}

// Task is a unit of work tracked by the system
type Task struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description" json:"description"`
	Status         TaskStatus          `bson:"status" json:"status"`
	Priority       TaskPriority        `bson:"priority" json:"priority"`
	ProjectID      *primitive.ObjectID `bson:"projectId" json:"projectId"`
	AssignedTo     *primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	DueDate        string              `bson:"dueDate" json:"dueDate"` // free-form, not validated on write
	EstimatedHours float64             `bson:"estimatedHours" json:"estimatedHours"`
	ActualHours    float64             `bson:"actualHours" json:"actualHours"`
	CreatedBy      primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// TaskResponse is the API shape of a task with its references resolved.
// Reference ids are null when absent or when they no longer resolve.
type TaskResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Status             string    `json:"status"`
	Priority           string    `json:"priority"`
	ProjectID          *string   `json:"projectId"`
	ProjectName        string    `json:"projectName"`
	AssignedTo         *string   `json:"assignedTo"`
	AssignedToUsername string    `json:"assignedToUsername"`
	DueDate            string    `json:"dueDate"`
	EstimatedHours     float64   `json:"estimatedHours"`
	ActualHours        float64   `json:"actualHours"`
	CreatedBy          *string   `json:"createdBy"`
	CreatedByUsername  string    `json:"createdByUsername"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ToResponse renders the task with the given resolved references. Any of
// project, assignee or creator may be nil when the reference is dangling.
func (t *Task) ToResponse(project *Project, assignee, creator *User) TaskResponse {
	resp := TaskResponse{
		ID:             t.ID.Hex(),
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if project != nil {
		id := project.ID.Hex()
		resp.ProjectID = &id
		resp.ProjectName = project.Name
	}
	if assignee != nil {
		id := assignee.ID.Hex()
		resp.AssignedTo = &id
		resp.AssignedToUsername = assignee.Username
	}
	if creator != nil {
		id := creator.ID.Hex()
		resp.CreatedBy = &id
		resp.CreatedByUsername = creator.Username
	}
	return resp
}

// TaskInput carries the fields of a create or update request. Each field
// remembers whether it was present in the request body.
type TaskInput struct {
	Title          Field `json:"title"`
	Description    Field `json:"description"`
	Status         Field `json:"status"`
	Priority       Field `json:"priority"`
	ProjectID      Field `json:"projectId"`
	AssignedTo     Field `json:"assignedTo"`
	DueDate        Field `json:"dueDate"`
	EstimatedHours Field `json:"estimatedHours"`
}

// TaskFilter is the conjunction of optional constraints used by listing,
// search and export. Zero values mean "no constraint".
type TaskFilter struct {
	SearchText string
	Status     TaskStatus
	Priority   TaskPriority
	ProjectID  *primitive.ObjectID
}

// ParseTaskFilter builds a filter from raw query values. Invalid enum
// values and malformed project ids are ignored.
func ParseTaskFilter(searchText, status, priority, projectID string) TaskFilter {
	var f TaskFilter
	f.SearchText = strings.TrimSpace(searchText)
	if s := TaskStatus(status); s.IsValid() {
		f.Status = s
	}
	if p := TaskPriority(priority); p.IsValid() {
		f.Priority = p
	}
	if oid, ok := ParseObjectID(projectID); ok {
		f.ProjectID = &oid
	}
	return f
}

// Matches applies the filter to a single task
func (f TaskFilter) Matches(t *Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.ProjectID != nil && (t.ProjectID == nil || *t.ProjectID != *f.ProjectID) {
		return false
	}
	if f.SearchText != "" {
		needle := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

// ParseObjectID parses a hex identifier, reporting false for anything malformed
func ParseObjectID(s string) (primitive.ObjectID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
