package jobs

import (
	"fmt"
	"log/slog"

	"loans/internal/core/application/usecases/queries"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueCheckJob    *OverdueCheckJob
	dueDateReminderJob *DueDateReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	overdueHandler queries.GetOverdueOrdersQueryHandler,
	dueWithinHandler queries.GetOrdersDueWithinQueryHandler,
	publisher ports.EventPublisher,
	options loanorder.Options,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueCheckJob:    NewOverdueCheckJob(overdueHandler, publisher, logger),
		dueDateReminderJob: NewDueDateReminderJob(dueWithinHandler, publisher, options, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueCheckJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue check job: %w", err)
	}

	if err := jm.dueDateReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.overdueCheckJob.Stop()
		return fmt.Errorf("failed to start due date reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueCheckJob.Stop()
	jm.dueDateReminderJob.Stop()
}
