package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTaskStatusIsValid(t *testing.T) {
	for _, s := range TaskStatuses {
		if !s.IsValid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	for _, s := range []TaskStatus{"", "Done", "pendiente", "Completed"} {
		if s.IsValid() {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}

func TestTaskPriorityIsHigh(t *testing.T) {
	tests := []struct {
		priority TaskPriority
		want     bool
	}{
		{TaskPriorityLow, false},
		{TaskPriorityMedium, false},
		{TaskPriorityHigh, true},
		{TaskPriorityCritical, true},
	}
	for _, tt := range tests {
		if got := tt.priority.IsHigh(); got != tt.want {
			t.Errorf("%q.IsHigh() = %v, want %v", tt.priority, got, tt.want)
		}
	}
}

func TestParseTaskFilter(t *testing.T) {
	projectID := primitive.NewObjectID()

	f := ParseTaskFilter("  deploy ", "Completada", "Alta", projectID.Hex())
	if f.SearchText != "deploy" {
		t.Errorf("Expected trimmed search text, got %q", f.SearchText)
	}
	if f.Status != TaskStatusCompleted {
		t.Errorf("Expected status Completada, got %q", f.Status)
	}
	if f.Priority != TaskPriorityHigh {
		t.Errorf("Expected priority Alta, got %q", f.Priority)
	}
	if f.ProjectID == nil || *f.ProjectID != projectID {
		t.Errorf("Expected project %s, got %v", projectID.Hex(), f.ProjectID)
	}

	ignored := ParseTaskFilter("   ", "Done", "Urgent", "not-an-id")
	if ignored.SearchText != "" || ignored.Status != "" || ignored.Priority != "" || ignored.ProjectID != nil {
		t.Errorf("Expected invalid values to be ignored, got %+v", ignored)
	}
}

func TestTaskFilterMatches(t *testing.T) {
	projectID := primitive.NewObjectID()
	otherProject := primitive.NewObjectID()

	task := &Task{
		Title:       "Ship Release",
		Description: "Tag and publish the BUILD",
		Status:      TaskStatusInProgress,
		Priority:    TaskPriorityHigh,
		ProjectID:   &projectID,
	}

	tests := []struct {
		name   string
		filter TaskFilter
		want   bool
	}{
		{"empty filter matches", TaskFilter{}, true},
		{"status match", TaskFilter{Status: TaskStatusInProgress}, true},
		{"status mismatch", TaskFilter{Status: TaskStatusCompleted}, false},
		{"priority mismatch", TaskFilter{Priority: TaskPriorityLow}, false},
		{"project match", TaskFilter{ProjectID: &projectID}, true},
		{"project mismatch", TaskFilter{ProjectID: &otherProject}, false},
		{"title case-insensitive", TaskFilter{SearchText: "release"}, true},
		{"description case-insensitive", TaskFilter{SearchText: "build"}, true},
		{"text not found", TaskFilter{SearchText: "invoice"}, false},
		{"conjunction", TaskFilter{SearchText: "ship", Status: TaskStatusInProgress, Priority: TaskPriorityHigh}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(task); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	unassigned := &Task{Title: "x"}
	if (TaskFilter{ProjectID: &projectID}).Matches(unassigned) {
		t.Error("Expected task without project not to match a project filter")
	}
}

func TestTaskToResponse(t *testing.T) {
	now := time.Now()
	project := &Project{ID: primitive.NewObjectID(), Name: "Proyecto Demo"}
	creator := &User{ID: primitive.NewObjectID(), Username: "admin"}
	task := &Task{
		ID:        primitive.NewObjectID(),
		Title:     "Write docs",
		Status:    TaskStatusPending,
		Priority:  TaskPriorityMedium,
		ProjectID: &project.ID,
		CreatedBy: creator.ID,
		CreatedAt: now,
	}

	resp := task.ToResponse(project, nil, creator)

	if resp.ID != task.ID.Hex() {
		t.Errorf("Expected ID %s, got %s", task.ID.Hex(), resp.ID)
	}
	if resp.ProjectID == nil || *resp.ProjectID != project.ID.Hex() {
		t.Errorf("Expected project id %s, got %v", project.ID.Hex(), resp.ProjectID)
	}
	if resp.ProjectName != "Proyecto Demo" {
		t.Errorf("Expected project name, got %q", resp.ProjectName)
	}
	if resp.AssignedTo != nil || resp.AssignedToUsername != "" {
		t.Errorf("Expected no assignee, got %v %q", resp.AssignedTo, resp.AssignedToUsername)
	}
	if resp.CreatedByUsername != "admin" {
		t.Errorf("Expected creator admin, got %q", resp.CreatedByUsername)
	}

	dangling := task.ToResponse(nil, nil, nil)
	if dangling.ProjectID != nil || dangling.ProjectName != "" {
		t.Error("Expected dangling project to render as absent")
	}
}
