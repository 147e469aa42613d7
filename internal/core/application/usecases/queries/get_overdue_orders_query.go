package queries

import (
	"errors"
	"time"

	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"
)

var ErrGetOverdueOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueOrdersQuery must be created via NewGetOverdueOrdersQuery constructor",
)

// GetOverdueOrdersQuery retrieves open loan orders whose due date lies
// strictly before the given day. Due dates are compared at day
// granularity, so an order due today is not overdue yet.
//
// Example:
//
//	query, err := NewGetOverdueOrdersQuery(time.Now())
//	if err != nil {
//	    return err
//	}
//
//	orders, err := handler.Handle(ctx, query)
type GetOverdueOrdersQuery struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueOrdersQuery creates a query for orders overdue as of the
// given moment.
func NewGetOverdueOrdersQuery(asOf time.Time) (GetOverdueOrdersQuery, error) {
	if asOf.IsZero() {
		return GetOverdueOrdersQuery{}, errs.NewValueIsRequiredError("asOf")
	}

	return GetOverdueOrdersQuery{
		guard: guard.NewConstructorGuard(),
		asOf:  asOf,
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOverdueOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueOrdersQueryIsNotConstructed)
}

// AsOf returns the moment overdue is judged against.
func (q GetOverdueOrdersQuery) AsOf() time.Time {
	return q.asOf
}
