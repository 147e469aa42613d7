package loanorder

import (
	"fmt"

	"loans/internal/pkg/errs"
)

// LineStatus represents the state of a single loan order line item.
// Unlike the order Status it is not guarded by a transition table:
// line statuses are derived from the line's quantity ledger as items
// ship, return and convert, with Lost and Damaged set out of band.
type LineStatus int

const (
	// LineStatusUnknown represents an invalid or undefined line status.
	LineStatusUnknown LineStatus = iota

	// LinePending is the initial status: nothing has shipped yet.
	LinePending

	// LineShipped indicates the full ordered quantity has left the
	// warehouse and is out on loan.
	LineShipped

	// LineReturned indicates the full ordered quantity has come back.
	LineReturned

	// LineConvertedToSale indicates everything shipped on this line
	// was sold to the borrower instead of returned.
	LineConvertedToSale

	// LinePartiallyConverted indicates part of the shipped quantity
	// was sold while the rest is still out on loan or returned.
	LinePartiallyConverted

	// LineLost indicates the items went missing while on loan.
	LineLost

	// LineDamaged indicates the items came back unusable.
	LineDamaged
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		LineStatusUnknown:      "Unknown",
		LinePending:            "Pending",
		LineShipped:            "Shipped",
		LineReturned:           "Returned",
		LineConvertedToSale:    "ConvertedToSale",
		LinePartiallyConverted: "PartiallyConverted",
		LineLost:               "Lost",
		LineDamaged:            "Damaged",
	}
}

// Validate checks if the LineStatus value is valid.
func (s LineStatus) Validate() error {
	if s == LineStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("line status is invalid", fmt.Errorf("%d is not a valid line status", s))
	}
	if _, ok := getLineStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("line status is invalid", fmt.Errorf("%d is not a valid line status", s))
	}
	return nil
}

// String returns the human-readable name of the line status.
func (s LineStatus) String() string {
	if str, ok := getLineStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOutOnLoan reports whether the line has items with the borrower:
// shipped in full, or shipped and only partially converted. A pending
// line has nothing out yet.
func (s LineStatus) IsOutOnLoan() bool {
	return s == LineShipped || s == LinePartiallyConverted
}

// IsComplete reports whether the line finished cleanly.
func (s LineStatus) IsComplete() bool {
	return s == LineReturned || s == LineConvertedToSale
}

// IsProblem reports whether the line ended in a problem state.
func (s LineStatus) IsProblem() bool {
	return s == LineLost || s == LineDamaged
}
