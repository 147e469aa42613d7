package queries

import (
	"errors"
	"time"

	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"
)

var ErrGetOrdersDueWithinQueryIsNotConstructed = errors.New(
	"GetOrdersDueWithinQuery must be created via NewGetOrdersDueWithinQuery constructor",
)

// GetOrdersDueWithinQuery retrieves open loan orders whose due date
// falls within the next N days, counting from the given moment's day.
// Due date reminders are built on this query.
type GetOrdersDueWithinQuery struct { //nolint:recvcheck //using for validation
	asOf time.Time
	days int

	guard guard.ConstructorGuard
}

// NewGetOrdersDueWithinQuery creates a query for orders coming due
// within days of asOf. Days must not be negative; zero means due today.
func NewGetOrdersDueWithinQuery(asOf time.Time, days int) (GetOrdersDueWithinQuery, error) {
	if asOf.IsZero() {
		return GetOrdersDueWithinQuery{}, errs.NewValueIsRequiredError("asOf")
	}
	if days < 0 {
		return GetOrdersDueWithinQuery{}, errs.NewValueIsOutOfRangeError("days", days, 0, "unbounded")
	}

	return GetOrdersDueWithinQuery{
		guard: guard.NewConstructorGuard(),
		asOf:  asOf,
		days:  days,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersDueWithinQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersDueWithinQueryIsNotConstructed)
}

// AsOf returns the start of the window.
func (q GetOrdersDueWithinQuery) AsOf() time.Time {
	return q.asOf
}

// Days returns the window length in days.
func (q GetOrdersDueWithinQuery) Days() int {
	return q.days
}
