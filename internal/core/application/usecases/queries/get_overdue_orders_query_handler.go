package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOverdueOrdersQueryHandler retrieves open orders past their due
// date. Orders without a due date are never overdue.
type GetOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueOrdersQueryHandler creates a handler for overdue order
// queries. Requires a GORM database connection.
func NewGetOverdueOrdersQueryHandler(db *gorm.DB) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{db: db}
}

// Handle executes the query and returns a summary row per overdue
// order, most overdue first.
func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM loan_orders
		WHERE status IN ?
		  AND due_date IS NOT NULL
		  AND due_date < ?
		ORDER BY due_date, reference
	`, openStatusValues(), dayStart(query.AsOf())).Rows()
	if err != nil {
		return nil, err
	}

	return scanOrderSummaries(rows)
}
