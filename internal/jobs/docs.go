// Package jobs provides scheduled background tasks for the loan module.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around loan order due dates.
//
// # Available Jobs
//
// 1. OverdueCheckJob - Runs hourly to surface open loan orders past their due date
// 2. DueDateReminderJob - Runs daily to report orders coming due within the reminder window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(overdueHandler, dueWithinHandler, publisher, options, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and keep their schedule; overdue and coming-due
// orders are surfaced as events and log lines, never transitioned.
// Failed job starts will stop any already running jobs.
package jobs
