package kernel

import (
	"fmt"

	"loans/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Quantity is a value object representing a non-negative decimal amount of
// stock. It is used for every running total in the loan order domain
// (ordered, shipped, returned, converted, sold), where correctness depends
// on amounts never going negative.
//
// The zero value of Quantity is a valid zero amount. Arithmetic that could
// produce a negative result (Sub) returns an error instead of silently
// wrapping, which is the backbone of the quantity-conservation checks in the
// line item and allocation ledgers.
//
// Quantity is immutable and thread-safe.
//
// Example usage:
//
//	shipped, _ := kernel.NewQuantityFromInt(100)
//	returned, _ := kernel.NewQuantityFromInt(40)
//	onLoan, err := shipped.Sub(returned) // 60
//	if err != nil {
//	    // would have gone negative
//	}
type Quantity struct {
	value decimal.Decimal
}

// ZeroQuantity returns a Quantity of zero.
func ZeroQuantity() Quantity {
	return Quantity{value: decimal.Zero}
}

// NewQuantity creates a Quantity from a decimal value.
// Returns an error if the value is negative.
func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%s is negative", value.String()),
		)
	}
	return Quantity{value: value}, nil
}

// NewQuantityFromInt creates a Quantity from an integer value.
// Returns an error if the value is negative.
func NewQuantityFromInt(value int64) (Quantity, error) {
	return NewQuantity(decimal.NewFromInt(value))
}

// NewQuantityFromString creates a Quantity from its decimal string
// representation. Returns an error if the string is not a valid decimal or
// the value is negative.
func NewQuantityFromString(s string) (Quantity, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	return NewQuantity(value)
}

// Decimal returns the underlying decimal value.
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// String returns the decimal string representation of the quantity.
func (q Quantity) String() string {
	return q.value.String()
}

// Add returns the sum of two quantities.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

// Sub returns the difference q - other.
// Returns an error if the result would be negative.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	result := q.value.Sub(other.value)
	if result.IsNegative() {
		return Quantity{}, errs.NewValueIsOutOfRangeError(
			"quantity", other.String(), "0", q.String(),
		)
	}
	return Quantity{value: result}, nil
}

// Min returns the smaller of two quantities.
func (q Quantity) Min(other Quantity) Quantity {
	if q.value.LessThan(other.value) {
		return q
	}
	return other
}

// IsZero returns true if the quantity is exactly zero.
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// IsPositive returns true if the quantity is greater than zero.
func (q Quantity) IsPositive() bool {
	return q.value.IsPositive()
}

// IsEqual returns true if both quantities represent the same amount.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value.Equal(other.value)
}

// GreaterThan returns true if q is strictly greater than other.
func (q Quantity) GreaterThan(other Quantity) bool {
	return q.value.GreaterThan(other.value)
}

// GreaterThanOrEqual returns true if q is greater than or equal to other.
func (q Quantity) GreaterThanOrEqual(other Quantity) bool {
	return q.value.GreaterThanOrEqual(other.value)
}

// LessThan returns true if q is strictly less than other.
func (q Quantity) LessThan(other Quantity) bool {
	return q.value.LessThan(other.value)
}
