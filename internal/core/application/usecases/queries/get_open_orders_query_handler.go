package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves open loan orders from the
// database, sorted by reference for stable listings.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order
// queries. Requires a GORM database connection.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query and returns a summary row per open order.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderSummaryColumns+`
		FROM loan_orders
		WHERE status IN ?
		ORDER BY reference
	`, openStatusValues()).Rows()
	if err != nil {
		return nil, err
	}

	return scanOrderSummaries(rows)
}
