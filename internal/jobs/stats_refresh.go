package jobs

import (
	"context"
	"fmt"
	"time"

	"tasktracker/internal/services"
)

// StatsRefreshJobName is the scheduler name of StatsRefreshJob
const StatsRefreshJobName = "stats_refresh"

// StatsRefreshJob publishes per-status and overdue task counts as gauges,
// using the same rules as the stats endpoint.
type StatsRefreshJob struct {
	tasks   services.TaskRepository
	metrics *services.Metrics
	now     func() time.Time
}

// NewStatsRefreshJob creates a new stats refresh job
func NewStatsRefreshJob(tasks services.TaskRepository, metrics *services.Metrics) *StatsRefreshJob {
	return &StatsRefreshJob{
		tasks:   tasks,
		metrics: metrics,
		now:     time.Now,
	}
}

// Run scans all tasks and updates the gauges
func (j *StatsRefreshJob) Run(ctx context.Context) error {
	tasks, err := j.tasks.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	stats := services.ComputeStats(tasks, j.now())
	j.metrics.SetTaskGauges(services.CountByStatus(tasks), stats.Overdue)
	return nil
}
