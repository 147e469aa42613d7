package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddExtraLineCommandIsNotConstructed = errors.New(
	"AddExtraLineCommand must be created via NewAddExtraLineCommand constructor",
)

// AddExtraLineCommand represents a request to attach a free-form charge
// to a loan order: shipping, insurance, handling fees.
type AddExtraLineCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	lineID      kernel.UUID
	reference   string
	description string
	quantity    kernel.Quantity
	price       decimal.Decimal
	notes       string

	guard guard.ConstructorGuard
}

// NewAddExtraLineCommand creates a command to add an extra charge line.
func NewAddExtraLineCommand(
	orderID kernel.UUID,
	lineID kernel.UUID,
	reference string,
	description string,
	quantity kernel.Quantity,
	price decimal.Decimal,
	notes string,
) (AddExtraLineCommand, error) {
	cmd := AddExtraLineCommand{
		guard:       guard.NewConstructorGuard(),
		reference:   reference,
		description: description,
		quantity:    quantity,
		price:       price,
		notes:       notes,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineID(lineID),
	); err != nil {
		return AddExtraLineCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddExtraLineCommand) Validate() error {
	return c.guard.Validate(ErrAddExtraLineCommandIsNotConstructed)
}

// OrderID returns the order to attach the charge to.
func (c AddExtraLineCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineID returns the identifier for the new extra line.
func (c AddExtraLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// Reference returns the short reference of the charge.
func (c AddExtraLineCommand) Reference() string {
	return c.reference
}

// Description returns the charge description.
func (c AddExtraLineCommand) Description() string {
	return c.description
}

// Quantity returns how many units of the charge apply.
func (c AddExtraLineCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// Price returns the unit price of the charge.
func (c AddExtraLineCommand) Price() decimal.Decimal {
	return c.price
}

// Notes returns free-form notes for the charge.
func (c AddExtraLineCommand) Notes() string {
	return c.notes
}

func (c *AddExtraLineCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddExtraLineCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}
