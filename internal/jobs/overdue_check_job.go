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

// OverdueCheckJob periodically scans for open loan orders past their
// due date and publishes an overdue event per order. Overdue is a
// derived state: orders are never transitioned, only surfaced.
type OverdueCheckJob struct {
	handler   queries.GetOverdueOrdersQueryHandler
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOverdueCheckJob creates a job that reports overdue loan orders
// every hour.
func NewOverdueCheckJob(
	handler queries.GetOverdueOrdersQueryHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OverdueCheckJob {
	return &OverdueCheckJob{
		handler:   handler,
		publisher: publisher,
		cron:      cron.New(),
		logger:    logger.With("component", "overdue_check_job"),
	}
}

// Start begins the overdue check job on the top of every hour.
func (j *OverdueCheckJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue check job started (running hourly)")
	return nil
}

// Stop stops the overdue check job.
func (j *OverdueCheckJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue check job stopped")
}

func (j *OverdueCheckJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetOverdueOrdersQuery(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue check job failed to build query", "error", err)
		return
	}

	orders, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue check job failed", "error", err)
		return
	}

	events := make([]loanorder.Event, 0, len(orders))
	for _, order := range orders {
		j.logger.WarnContext(ctx, "Loan order is overdue",
			"order_id", order.ID.String(),
			"reference", order.Reference,
			"borrower_id", order.BorrowerID.String(),
			"due_date", order.DueDate,
		)

		events = append(events, loanorder.Event{
			Type:      loanorder.EventOrderOverdue,
			OrderID:   order.ID,
			Reference: order.Reference,
		})
	}

	j.publisher.Publish(ctx, events)
}
