package services

import (
	"tasktracker/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the domain Prometheus metrics. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	TasksCreated     prometheus.Counter
	TasksUpdated     prometheus.Counter
	TasksDeleted     prometheus.Counter
	HistoryEntries   *prometheus.CounterVec
	Notifications    *prometheus.CounterVec
	WorkflowFailures *prometheus.CounterVec
	TasksByStatus    *prometheus.GaugeVec
	TasksOverdue     prometheus.Gauge
	ImportedRecords  *prometheus.CounterVec
	ImportSkipped    *prometheus.CounterVec
}

// NewMetrics registers the metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TasksCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tasktracker_tasks_created_total",
			Help: "Total number of tasks created",
		}),
		TasksUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "tasktracker_tasks_updated_total",
			Help: "Total number of task updates persisted",
		}),
		TasksDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "tasktracker_tasks_deleted_total",
			Help: "Total number of tasks deleted",
		}),
		HistoryEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tasktracker_history_entries_total",
			Help: "History entries appended by action",
		}, []string{"action"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tasktracker_notifications_created_total",
			Help: "Notifications created by type",
		}, []string{"type"}),
		WorkflowFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tasktracker_workflow_failures_total",
			Help: "Task write workflow failures by operation and step",
		}, []string{"operation", "step"}),
		TasksByStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tasktracker_tasks_by_status",
			Help: "Current number of tasks per status",
		}, []string{"status"}),
		TasksOverdue: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tasktracker_tasks_overdue",
			Help: "Current number of overdue, not completed tasks",
		}),
		ImportedRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tasktracker_import_records_total",
			Help: "Records created by the legacy importer by collection",
		}, []string{"collection"}),
		ImportSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tasktracker_import_skipped_total",
			Help: "Records skipped by the legacy importer by collection",
		}, []string{"collection"}),
	}
}

// RecordTaskCreated records a successful task insert
func (m *Metrics) RecordTaskCreated() {
	if m == nil {
		return
	}
	m.TasksCreated.Inc()
}

// RecordTaskUpdated records a persisted task update
func (m *Metrics) RecordTaskUpdated() {
	if m == nil {
		return
	}
	m.TasksUpdated.Inc()
}

// RecordTaskDeleted records a task removal
func (m *Metrics) RecordTaskDeleted() {
	if m == nil {
		return
	}
	m.TasksDeleted.Inc()
}

// RecordHistory records an appended history entry
func (m *Metrics) RecordHistory(action models.HistoryAction) {
	if m == nil {
		return
	}
	m.HistoryEntries.WithLabelValues(string(action)).Inc()
}

// RecordNotification records a created notification
func (m *Metrics) RecordNotification(kind models.NotificationType) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(string(kind)).Inc()
}

// RecordWorkflowFailure records the step at which a task write aborted
func (m *Metrics) RecordWorkflowFailure(operation, step string) {
	if m == nil {
		return
	}
	m.WorkflowFailures.WithLabelValues(operation, step).Inc()
}

// SetTaskGauges publishes the current per-status and overdue counts.
// Statuses missing from counts are reset to zero.
func (m *Metrics) SetTaskGauges(counts map[models.TaskStatus]int, overdue int) {
	if m == nil {
		return
	}
	for _, status := range models.TaskStatuses {
		m.TasksByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
	m.TasksOverdue.Set(float64(overdue))
}

// RecordImport records one imported or skipped legacy record
func (m *Metrics) RecordImport(collection string, skipped bool) {
	if m == nil {
		return
	}
	if skipped {
		m.ImportSkipped.WithLabelValues(collection).Inc()
		return
	}
	m.ImportedRecords.WithLabelValues(collection).Inc()
}
