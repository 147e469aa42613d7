package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var ErrConvertOrderCommandIsNotConstructed = errors.New(
	"ConvertOrderCommand must be created via NewConvertOrderCommand constructor",
)

// ConvertOrderCommand closes a whole loan order as sold to the borrower.
type ConvertOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConvertOrderCommand creates the command for the given order.
func NewConvertOrderCommand(orderID kernel.UUID) (ConvertOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConvertOrderCommand{}, err
	}

	return ConvertOrderCommand{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConvertOrderCommand) Validate() error {
	return c.guard.Validate(ErrConvertOrderCommandIsNotConstructed)
}

// OrderID returns the order the command targets.
func (c ConvertOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
