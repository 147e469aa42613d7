package jobs

import (
	"context"
	"log/slog"
	"time"

	"loans/internal/core/application/usecases/queries"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DueDateReminderJob reminds about loan orders coming due within the
// tenant's reminder window, once a day.
type DueDateReminderJob struct {
	handler   queries.GetOrdersDueWithinQueryHandler
	publisher ports.EventPublisher
	options   loanorder.Options
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDueDateReminderJob creates a job that reports orders due within
// Options.DueDateReminderDays every morning.
func NewDueDateReminderJob(
	handler queries.GetOrdersDueWithinQueryHandler,
	publisher ports.EventPublisher,
	options loanorder.Options,
	logger *slog.Logger,
) *DueDateReminderJob {
	return &DueDateReminderJob{
		handler:   handler,
		publisher: publisher,
		options:   options,
		cron:      cron.New(),
		logger:    logger.With("component", "due_date_reminder_job"),
	}
}

// Start begins the reminder job at 06:00 every day.
func (j *DueDateReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 6 * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Due date reminder job started (running daily)",
		"reminder_days", j.options.DueDateReminderDays)
	return nil
}

// Stop stops the reminder job.
func (j *DueDateReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Due date reminder job stopped")
}

func (j *DueDateReminderJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetOrdersDueWithinQuery(time.Now().UTC(), j.options.DueDateReminderDays)
	if err != nil {
		j.logger.ErrorContext(ctx, "Due date reminder job failed to build query", "error", err)
		return
	}

	orders, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Due date reminder job failed", "error", err)
		return
	}

	events := make([]loanorder.Event, 0, len(orders))
	for _, order := range orders {
		j.logger.InfoContext(ctx, "Loan order is coming due",
			"order_id", order.ID.String(),
			"reference", order.Reference,
			"borrower_id", order.BorrowerID.String(),
			"due_date", order.DueDate,
		)

		events = append(events, loanorder.Event{
			Type:      loanorder.EventOrderDueSoon,
			OrderID:   order.ID,
			Reference: order.Reference,
		})
	}

	j.publisher.Publish(ctx, events)
}
