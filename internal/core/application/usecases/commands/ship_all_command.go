package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var ErrShipAllCommandIsNotConstructed = errors.New(
	"ShipAllCommand must be created via NewShipAllCommand constructor",
)

// ShipAllCommand represents a request to ship every open line of a
// loan order in full, letting the shipment planner pick the stock
// items.
type ShipAllCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewShipAllCommand creates the command for the given order.
func NewShipAllCommand(orderID kernel.UUID) (ShipAllCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ShipAllCommand{}, err
	}

	return ShipAllCommand{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipAllCommand) Validate() error {
	return c.guard.Validate(ErrShipAllCommandIsNotConstructed)
}

// OrderID returns the order the command targets.
func (c ShipAllCommand) OrderID() kernel.UUID {
	return c.orderID
}
