package client

import "time"

// User is the public view of an account
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Task is a task with its references resolved
type Task struct {
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

// TaskInput is the body of task create and update calls. Nil fields are
// omitted; use Null to clear a reference on update.
type TaskInput struct {
	Title          *string     `json:"title,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Status         *string     `json:"status,omitempty"`
	Priority       *string     `json:"priority,omitempty"`
	ProjectID      interface{} `json:"projectId,omitempty"`
	AssignedTo     interface{} `json:"assignedTo,omitempty"`
	DueDate        interface{} `json:"dueDate,omitempty"`
	EstimatedHours *float64    `json:"estimatedHours,omitempty"`
}

// Null clears a reference field of TaskInput when sent
var Null = nullValue{}

type nullValue struct{}

func (nullValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// String returns a pointer to s, for TaskInput fields
func String(s string) *string { return &s }

// Float returns a pointer to f, for TaskInput fields
func Float(f float64) *float64 { return &f }

// TaskFilter narrows task listing and CSV export. Empty fields are ignored.
type TaskFilter struct {
	SearchText string
	Status     string
	Priority   string
	ProjectID  string
}

// Stats are the dashboard counters
type Stats struct {
	Total        int    `json:"total"`
	Completed    int    `json:"completed"`
	Pending      int    `json:"pending"`
	HighPriority int    `json:"highPriority"`
	Overdue      int    `json:"overdue"`
	StatsText    string `json:"statsText"`
}

// Project groups tasks
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Comment is a note on a task
type Comment struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	UserID      *string   `json:"userId"`
	Username    *string   `json:"username"`
	CommentText string    `json:"commentText"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HistoryEntry records one change to a task
type HistoryEntry struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	UserID    *string   `json:"userId"`
	Username  *string   `json:"username"`
	Action    string    `json:"action"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	Timestamp time.Time `json:"timestamp"`
}

// Notification is a message for the signed-in user
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report is a formatted multi-line summary
type Report struct {
	Report string `json:"report"`
	Type   string `json:"type"`
}

type authResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
