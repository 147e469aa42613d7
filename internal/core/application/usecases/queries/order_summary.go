// Package queries contains the read side of the loan module. Query
// handlers go straight to the database with raw SQL and return flat
// response structs, bypassing the aggregate.
package queries

import (
	"database/sql"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSummaryResponse is one loan order row as the list queries return
// it: identity, borrower, lifecycle status and the dates that drive
// overdue and reminder handling.
type OrderSummaryResponse struct {
	ID         kernel.UUID
	Reference  string
	BorrowerID kernel.UUID
	Status     loanorder.Status
	DueDate    *time.Time
	TotalPrice decimal.Decimal
}

const orderSummaryColumns = `
		id,
		reference,
		borrower_id,
		status,
		due_date,
		total_price`

// scanOrderSummaries drains the given rows into summary responses.
// Column order must match orderSummaryColumns.
func scanOrderSummaries(rows *sql.Rows) ([]OrderSummaryResponse, error) {
	defer rows.Close()

	summaries := make([]OrderSummaryResponse, 0)
	for rows.Next() {
		var (
			id         uuid.UUID
			reference  string
			borrowerID uuid.UUID
			status     int
			dueDate    sql.NullTime
			totalPrice decimal.Decimal
		)

		if err := rows.Scan(&id, &reference, &borrowerID, &status, &dueDate, &totalPrice); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		borrower, err := kernel.UUIDFromBytes(borrowerID[:])
		if err != nil {
			return nil, err
		}

		summary := OrderSummaryResponse{
			ID:         orderID,
			Reference:  reference,
			BorrowerID: borrower,
			Status:     loanorder.Status(status),
			TotalPrice: totalPrice,
		}
		if dueDate.Valid {
			due := dueDate.Time.UTC()
			summary.DueDate = &due
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// openStatusValues returns the open lifecycle statuses as plain ints
// for SQL IN clauses.
func openStatusValues() []int {
	statuses := loanorder.OpenStatuses()
	values := make([]int, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, int(s))
	}
	return values
}

// dayStart truncates a moment to the start of its UTC day. Due dates
// are compared at day granularity.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
