package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddLineItemCommandIsNotConstructed = errors.New(
	"AddLineItemCommand must be created via NewAddLineItemCommand constructor",
)

// AddLineItemCommand represents a request to add a part with a
// requested quantity to an existing loan order.
type AddLineItemCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	lineID    kernel.UUID
	partID    kernel.UUID
	quantity  kernel.Quantity
	loanPrice *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewAddLineItemCommand creates a command to add a line item.
// The quantity must be positive; the loan price is optional.
func NewAddLineItemCommand(
	orderID kernel.UUID,
	lineID kernel.UUID,
	partID kernel.UUID,
	quantity kernel.Quantity,
	loanPrice *decimal.Decimal,
) (AddLineItemCommand, error) {
	cmd := AddLineItemCommand{
		guard:     guard.NewConstructorGuard(),
		quantity:  quantity,
		loanPrice: loanPrice,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineID(lineID),
		cmd.setPartID(partID),
	); err != nil {
		return AddLineItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddLineItemCommand) Validate() error {
	return c.guard.Validate(ErrAddLineItemCommandIsNotConstructed)
}

// OrderID returns the order to add the line to.
func (c AddLineItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LineID returns the identifier for the new line item.
func (c AddLineItemCommand) LineID() kernel.UUID {
	return c.lineID
}

// PartID returns the part being requested.
func (c AddLineItemCommand) PartID() kernel.UUID {
	return c.partID
}

// Quantity returns the requested quantity.
func (c AddLineItemCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// LoanPrice returns the optional per-unit loan fee.
func (c AddLineItemCommand) LoanPrice() *decimal.Decimal {
	return c.loanPrice
}

func (c *AddLineItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddLineItemCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *AddLineItemCommand) setPartID(partID kernel.UUID) error {
	if err := partID.Validate(); err != nil {
		return err
	}

	c.partID = partID
	return nil
}
