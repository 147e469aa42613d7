package loanorder

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ExtraLine is a free-form charge attached to an order: shipping,
// insurance, handling fees. It carries no part and no stock side,
// it only contributes to the order total.
type ExtraLine struct {
	id          kernel.UUID
	reference   string
	description string
	quantity    kernel.Quantity
	price       decimal.Decimal
	notes       string

	guard guard.ConstructorGuard
}

// NewExtraLine creates an extra charge line for an order.
// Quantity must be positive; the unit price must not be negative.
func NewExtraLine(
	id kernel.UUID,
	reference string,
	description string,
	quantity kernel.Quantity,
	price decimal.Decimal,
	notes string,
) (*ExtraLine, error) {
	l := &ExtraLine{
		guard:       guard.NewConstructorGuard(),
		reference:   reference,
		description: description,
		notes:       notes,
	}

	if err := errors.Join(
		l.setID(id),
		l.setQuantity(quantity),
		l.setPrice(price),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreExtraLine reconstructs an extra line from persistence.
func RestoreExtraLine(
	id kernel.UUID,
	reference string,
	description string,
	quantity kernel.Quantity,
	price decimal.Decimal,
	notes string,
) (*ExtraLine, error) {
	return NewExtraLine(id, reference, description, quantity, price, notes)
}

// Validate ensures the extra line was built via its constructors.
func (l *ExtraLine) Validate() error {
	if l == nil {
		return guard.ErrDefaultConstructorGuard
	}
	return l.guard.Validate(guard.ErrDefaultConstructorGuard)
}

// ID returns the extra line's unique identifier.
func (l *ExtraLine) ID() kernel.UUID {
	return l.id
}

// Reference returns the short reference of the charge.
func (l *ExtraLine) Reference() string {
	return l.reference
}

// Description returns the human-readable description of the charge.
func (l *ExtraLine) Description() string {
	return l.description
}

// Quantity returns how many units of the charge apply.
func (l *ExtraLine) Quantity() kernel.Quantity {
	return l.quantity
}

// Price returns the unit price of the charge.
func (l *ExtraLine) Price() decimal.Decimal {
	return l.price
}

// Notes returns free-form notes attached to the charge.
func (l *ExtraLine) Notes() string {
	return l.notes
}

// TotalPrice returns quantity times unit price.
func (l *ExtraLine) TotalPrice() decimal.Decimal {
	return l.price.Mul(l.quantity.Decimal())
}

// IsEqual compares two extra lines by their unique identifiers.
func (l *ExtraLine) IsEqual(other *ExtraLine) bool {
	return other != nil && l.id.IsEqual(other.id)
}

func (l *ExtraLine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *ExtraLine) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("extra line quantity must be greater than zero"))
	}
	l.quantity = quantity
	return nil
}

func (l *ExtraLine) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", errors.New("extra line price must not be negative"))
	}
	l.price = price
	return nil
}
