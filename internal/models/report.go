package models

// TaskStats are the dashboard counters
type TaskStats struct {
	Total        int    `json:"total"`
	Completed    int    `json:"completed"`
	Pending      int    `json:"pending"`
	HighPriority int    `json:"highPriority"`
	Overdue      int    `json:"overdue"`
	StatsText    string `json:"statsText"`
}

// ReportType selects one of the grouped-count reports
type ReportType string

const (
	ReportTasks    ReportType = "tasks"
	ReportProjects ReportType = "projects"
	ReportUsers    ReportType = "users"
)

// Report is a formatted multi-line summary
type Report struct {
	Report string     `json:"report"`
	Type   ReportType `json:"type"`
}
