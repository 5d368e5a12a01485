package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"tasktracker/internal/models"

	"github.com/araddon/dateparse"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportService computes dashboard stats and grouped-count reports from a
// full scan of the task collection.
type ReportService struct {
	tasks    TaskRepository
	projects ProjectRepository
	users    UserRepository
	now      func() time.Time
}

// NewReportService creates a new report service
func NewReportService(tasks TaskRepository, projects ProjectRepository, users UserRepository) *ReportService {
	return &ReportService{
		tasks:    tasks,
		projects: projects,
		users:    users,
		now:      time.Now,
	}
}

// SetClock overrides the time source used for overdue checks
func (s *ReportService) SetClock(now func() time.Time) {
	s.now = now
}

// Stats returns the dashboard counters
func (s *ReportService) Stats(ctx context.Context) (*models.TaskStats, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(tasks, s.now())
	return &stats, nil
}

// Generate builds the report of the given type
func (s *ReportService) Generate(ctx context.Context, reportType string) (*models.Report, error) {
	kind := models.ReportType(reportType)

	var lines []string
	switch kind {
	case models.ReportTasks:
		tasks, err := s.tasks.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		lines = TaskReportLines(tasks)

	case models.ReportProjects:
		projects, err := s.projects.List(ctx)
		if err != nil {
			return nil, err
		}
		tasks, err := s.tasks.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		lines = ProjectReportLines(projects, tasks)

	case models.ReportUsers:
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, err
		}
		tasks, err := s.tasks.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		// listing order is by username; the report keeps account creation order
		sort.SliceStable(users, func(i, j int) bool {
			return users[i].ID.Hex() < users[j].ID.Hex()
		})
		lines = UserReportLines(users, tasks)

	default:
		return nil, ErrInvalidReportType
	}

	return &models.Report{
		Report: FormatReport(kind, lines),
		Type:   kind,
	}, nil
}

// FormatReport renders the report header followed by one line per group
func FormatReport(kind models.ReportType, lines []string) string {
	return fmt.Sprintf("=== REPORTE: %s ===\n\n%s\n", strings.ToUpper(string(kind)), strings.Join(lines, "\n"))
}

// TaskReportLines counts tasks per status in order of first appearance.
// Statuses with no tasks are omitted.
func TaskReportLines(tasks []models.Task) []string {
	counts := make(map[models.TaskStatus]int)
	var order []models.TaskStatus
	for i := range tasks {
		status := tasks[i].Status
		if status == "" {
			status = models.TaskStatusPending
		}
		if _, ok := counts[status]; !ok {
			order = append(order, status)
		}
		counts[status]++
	}

	lines := make([]string, 0, len(order))
	for _, status := range order {
		lines = append(lines, fmt.Sprintf("%s: %d tareas", status, counts[status]))
	}
	return lines
}

// ProjectReportLines counts tasks for every project, including empty ones
func ProjectReportLines(projects []models.Project, tasks []models.Task) []string {
	counts := make(map[primitive.ObjectID]int)
	for i := range tasks {
		if tasks[i].ProjectID != nil {
			counts[*tasks[i].ProjectID]++
		}
	}

	lines := make([]string, 0, len(projects))
	for _, p := range projects {
		lines = append(lines, fmt.Sprintf("%s: %d tareas", p.Name, counts[p.ID]))
	}
	return lines
}

// UserReportLines counts assigned tasks for every user
func UserReportLines(users []models.User, tasks []models.Task) []string {
	counts := make(map[primitive.ObjectID]int)
	for i := range tasks {
		if tasks[i].AssignedTo != nil {
			counts[*tasks[i].AssignedTo]++
		}
	}

	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, fmt.Sprintf("%s: %d tareas asignadas", u.Username, counts[u.ID]))
	}
	return lines
}

// ComputeStats derives the dashboard counters at instant now
func ComputeStats(tasks []models.Task, now time.Time) models.TaskStats {
	var stats models.TaskStats
	stats.Total = len(tasks)
	for i := range tasks {
		t := &tasks[i]
		if t.Status == models.TaskStatusCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
		if t.Priority.IsHigh() {
			stats.HighPriority++
		}
		if IsOverdue(t, now) {
			stats.Overdue++
		}
	}
	stats.StatsText = fmt.Sprintf("Total: %d | Completadas: %d | Pendientes: %d | Alta Prioridad: %d | Vencidas: %d",
		stats.Total, stats.Completed, stats.Pending, stats.HighPriority, stats.Overdue)
	return stats
}

// CountByStatus returns the number of tasks per status
func CountByStatus(tasks []models.Task) map[models.TaskStatus]int {
	counts := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for i := range tasks {
		counts[tasks[i].Status]++
	}
	return counts
}

// IsOverdue reports whether a not completed task has a due date that parses
// to an instant strictly before now. Unparsable dates are never overdue.
func IsOverdue(t *models.Task, now time.Time) bool {
	if t.Status == models.TaskStatusCompleted {
		return false
	}
	due, ok := ParseDueDate(t.DueDate)
	if !ok {
		return false
	}
	return due.Before(now)
}

// ParseDueDate parses a free-form due date. Dates without a zone are read
// as UTC.
func ParseDueDate(value string) (due time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	defer func() {
		if recover() != nil {
			due, ok = time.Time{}, false
		}
	}()
	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
