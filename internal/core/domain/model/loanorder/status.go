package loanorder

import (
	"fmt"

	"loans/internal/pkg/errs"
)

// Status represents the lifecycle state of a loan order.
// It implements a state machine with a fixed transition table to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Approved ──> Issued ──> Shipped ──> PartialReturn ──> Returned
//	   │            │           │          │              │              │
//	   │            │           │          │              │              v
//	   └────────────┴───────────┴──────────┴──> OnHold    └──> ConvertedToSale
//	                                              │                 WrittenOff
//	                                              └──> (resume)
//
// Pending, Approved and OnHold may also be cancelled. ConvertedToSale,
// Cancelled and WrittenOff are terminal. Overdue is never a stored
// status; it is derived from the due date at read time.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status when a loan order is first created.
	// Orders in this status are still being edited and await approval.
	Pending

	// Approved indicates the order has been reviewed and approved.
	// Stock may not leave the warehouse until the order is issued.
	Approved

	// Issued indicates the order has been issued to the borrower.
	// Line items may now be shipped against the order.
	Issued

	// Shipped indicates at least one line item has left the warehouse.
	Shipped

	// OnHold indicates the order is temporarily suspended.
	// The order resumes to the status implied by its line items.
	OnHold

	// PartialReturn indicates some shipped lines have been closed
	// while others are still out on loan.
	PartialReturn

	// Returned indicates every shipped item has come back.
	// Orders in this status may still be converted to a sale.
	Returned

	// ConvertedToSale indicates the loan ended with the borrower
	// purchasing the items. This is a terminal status.
	ConvertedToSale

	// Cancelled indicates the order was abandoned before completion.
	// This is a terminal status.
	Cancelled

	// WrittenOff indicates the loaned items will not come back and
	// the order was closed as a loss. This is a terminal status.
	WrittenOff
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		Pending:         "Pending",
		Approved:        "Approved",
		Issued:          "Issued",
		Shipped:         "Shipped",
		OnHold:          "OnHold",
		PartialReturn:   "PartialReturn",
		Returned:        "Returned",
		ConvertedToSale: "ConvertedToSale",
		Cancelled:       "Cancelled",
		WrittenOff:      "WrittenOff",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:         "Pending",
		Approved:        "Approved",
		Issued:          "Issued",
		Shipped:         "Shipped",
		OnHold:          "OnHold",
		PartialReturn:   "PartialReturn",
		Returned:        "Returned",
		ConvertedToSale: "ConvertedToSale",
		Cancelled:       "Cancelled",
		WrittenOff:      "WrittenOff",
	}
}

// getAllowedTransitions returns the complete transition table of the
// loan order state machine. A status maps to the set of statuses it may
// move to; terminal statuses map to an empty set. OnHold lists every
// status a suspended order may resume to.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:         {Approved, Issued, OnHold, Cancelled},
		Approved:        {Issued, OnHold, Cancelled},
		Issued:          {Shipped, OnHold, Returned, PartialReturn, ConvertedToSale, WrittenOff},
		Shipped:         {OnHold, Returned, PartialReturn, ConvertedToSale, WrittenOff},
		OnHold:          {Pending, Approved, Issued, Shipped, Cancelled},
		PartialReturn:   {Returned, ConvertedToSale, WrittenOff},
		Returned:        {ConvertedToSale},
		ConvertedToSale: {},
		Cancelled:       {},
		WrittenOff:      {},
	}
}

// OpenStatuses returns the statuses that form the "open" group: orders
// that are still in flight and count against stock on loan.
func OpenStatuses() []Status {
	return []Status{Pending, Approved, Issued, Shipped, OnHold, PartialReturn}
}

// Validate checks if the Status value is valid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOpen reports whether the status belongs to the open group:
// the order is still in flight and its allocations claim stock.
func (s Status) IsOpen() bool {
	switch s {
	case Pending, Approved, Issued, Shipped, OnHold, PartialReturn:
		return true
	default:
		return false
	}
}

// IsComplete reports whether the status belongs to the complete group:
// the order finished successfully.
func (s Status) IsComplete() bool {
	return s == Returned || s == ConvertedToSale
}

// IsFailed reports whether the status belongs to the failed group:
// the order finished without the items coming back as a loan should.
func (s Status) IsFailed() bool {
	return s == Cancelled || s == WrittenOff
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(getAllowedTransitions()[s]) == 0 && s != StatusUnknown
}

// CanTransitionTo reports whether the transition table permits a move
// from the current status to target. Self-transitions are not allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range getAllowedTransitions()[s] {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the status to target if the transition table
// permits it.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, error) if the transition is not allowed from the current status
//
// This method is the single gate every Order action goes through to
// change the order status.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
