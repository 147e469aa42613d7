package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/pkg/guard"
)

var (
	ErrShipItemsCommandIsNotConstructed = errors.New(
		"ShipItemsCommand must be created via NewShipItemsCommand constructor",
	)
	ErrShipmentItemsAreRequired = errors.New("at least one shipment item is required")
)

// ShipItemsCommand represents a request to ship a batch of quantities
// from concrete stock items against the lines of a loan order.
//
// Example:
//
//	cmd, err := NewShipItemsCommand(orderID, []loanorder.ShipmentItem{
//	    {LineID: lineID, StockItemID: stockID, Quantity: five},
//	})
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("shipment failed: %w", err)
//	}
type ShipItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []loanorder.ShipmentItem

	guard guard.ConstructorGuard
}

// NewShipItemsCommand creates a command to ship a batch of items.
// The batch must not be empty; per-item validation happens in the
// domain where line and stock state are known.
func NewShipItemsCommand(orderID kernel.UUID, items []loanorder.ShipmentItem) (ShipItemsCommand, error) {
	cmd := ShipItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return ShipItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipItemsCommand) Validate() error {
	return c.guard.Validate(ErrShipItemsCommandIsNotConstructed)
}

// OrderID returns the order being shipped against.
func (c ShipItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the shipment batch.
func (c ShipItemsCommand) Items() []loanorder.ShipmentItem {
	return c.items
}

func (c *ShipItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ShipItemsCommand) setItems(items []loanorder.ShipmentItem) error {
	if len(items) == 0 {
		return ErrShipmentItemsAreRequired
	}

	c.items = items
	return nil
}
