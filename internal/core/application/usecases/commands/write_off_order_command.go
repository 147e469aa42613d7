package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var ErrWriteOffOrderCommandIsNotConstructed = errors.New(
	"WriteOffOrderCommand must be created via NewWriteOffOrderCommand constructor",
)

// WriteOffOrderCommand closes a loan order as a loss.
type WriteOffOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewWriteOffOrderCommand creates the command for the given order.
func NewWriteOffOrderCommand(orderID kernel.UUID) (WriteOffOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return WriteOffOrderCommand{}, err
	}

	return WriteOffOrderCommand{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c WriteOffOrderCommand) Validate() error {
	return c.guard.Validate(ErrWriteOffOrderCommandIsNotConstructed)
}

// OrderID returns the order the command targets.
func (c WriteOffOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
