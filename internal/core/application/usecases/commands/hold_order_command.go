package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var ErrHoldOrderCommandIsNotConstructed = errors.New(
	"HoldOrderCommand must be created via NewHoldOrderCommand constructor",
)

// HoldOrderCommand suspends a loan order.
type HoldOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewHoldOrderCommand creates the command for the given order.
func NewHoldOrderCommand(orderID kernel.UUID) (HoldOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return HoldOrderCommand{}, err
	}

	return HoldOrderCommand{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c HoldOrderCommand) Validate() error {
	return c.guard.Validate(ErrHoldOrderCommandIsNotConstructed)
}

// OrderID returns the order the command targets.
func (c HoldOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
