package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersDueWithinQueryHandler retrieves open orders coming due
// inside a day window. The due date reminder job feeds on it.
type GetOrdersDueWithinQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersDueWithinQueryHandler creates a handler for due window
// queries. Requires a GORM database connection.
func NewGetOrdersDueWithinQueryHandler(db *gorm.DB) GetOrdersDueWithinQueryHandler {
	return GetOrdersDueWithinQueryHandler{db: db}
}

// Handle executes the query and returns a summary row per order due
// within the window, soonest first. The window covers the asOf day
// through the end of the last day.
func (h GetOrdersDueWithinQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersDueWithinQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	windowStart := dayStart(query.AsOf())
	windowEnd := windowStart.AddDate(0, 0, query.Days()+1)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM loan_orders
		WHERE status IN ?
		  AND due_date IS NOT NULL
		  AND due_date >= ?
		  AND due_date < ?
		ORDER BY due_date, reference
	`, openStatusValues(), windowStart, windowEnd).Rows()
	if err != nil {
		return nil, err
	}

	return scanOrderSummaries(rows)
}
