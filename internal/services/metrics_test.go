package services_test

import (
	"testing"

	"tasktracker/internal/models"
	"tasktracker/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *services.Metrics
	assert.NotPanics(t, func() {
		m.RecordTaskCreated()
		m.RecordHistory(models.HistoryActionCreated)
		m.SetTaskGauges(nil, 3)
		m.RecordImport("tasks", true)
	})
}

func TestSetTaskGaugesResetsMissingStatuses(t *testing.T) {
	m := services.NewMetrics(prometheus.NewRegistry())

	m.SetTaskGauges(map[models.TaskStatus]int{models.TaskStatusPending: 4, models.TaskStatusBlocked: 1}, 2)
	assert.Equal(t, 4.0, testutil.ToFloat64(m.TasksByStatus.WithLabelValues("Pendiente")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TasksOverdue))

	m.SetTaskGauges(map[models.TaskStatus]int{models.TaskStatusCompleted: 1}, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TasksByStatus.WithLabelValues("Pendiente")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TasksByStatus.WithLabelValues("Completada")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TasksOverdue))
}

func TestRecordImport(t *testing.T) {
	m := services.NewMetrics(prometheus.NewRegistry())

	m.RecordImport("tasks", false)
	m.RecordImport("tasks", false)
	m.RecordImport("comments", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ImportedRecords.WithLabelValues("tasks")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImportSkipped.WithLabelValues("comments")))
}
