package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var ErrReturnOrderCommandIsNotConstructed = errors.New(
	"ReturnOrderCommand must be created via NewReturnOrderCommand constructor",
)

// ReturnOrderCommand completes a loan order as returned, settling every open line.
type ReturnOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReturnOrderCommand creates the command for the given order.
func NewReturnOrderCommand(orderID kernel.UUID) (ReturnOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReturnOrderCommand{}, err
	}

	return ReturnOrderCommand{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnOrderCommand) Validate() error {
	return c.guard.Validate(ErrReturnOrderCommandIsNotConstructed)
}

// OrderID returns the order the command targets.
func (c ReturnOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
