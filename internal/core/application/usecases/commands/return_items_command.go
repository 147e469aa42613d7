package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var (
	ErrReturnItemsCommandIsNotConstructed = errors.New(
		"ReturnItemsCommand must be created via NewReturnItemsCommand constructor",
	)
	ErrReturnItemsAreRequired = errors.New("at least one return item is required")
)

// ReturnItemInput is one entry of a return batch: take Quantity back
// against the given allocation. The optional stock status and location
// tell the stock module what condition the items came back in and
// where to put them.
type ReturnItemInput struct {
	AllocationID kernel.UUID
	Quantity     kernel.Quantity
	StockStatus  string
	LocationID   *kernel.UUID
}

// ReturnItemsCommand represents a request to take a batch of loaned
// quantities back into stock.
type ReturnItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	items   []ReturnItemInput

	guard guard.ConstructorGuard
}

// NewReturnItemsCommand creates a command to return a batch of items.
// The batch must not be empty; per-item validation happens in the
// domain where the allocation ledger is known.
func NewReturnItemsCommand(orderID kernel.UUID, items []ReturnItemInput) (ReturnItemsCommand, error) {
	cmd := ReturnItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return ReturnItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnItemsCommand) Validate() error {
	return c.guard.Validate(ErrReturnItemsCommandIsNotConstructed)
}

// OrderID returns the order being returned against.
func (c ReturnItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the return batch.
func (c ReturnItemsCommand) Items() []ReturnItemInput {
	return c.items
}

func (c *ReturnItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReturnItemsCommand) setItems(items []ReturnItemInput) error {
	if len(items) == 0 {
		return ErrReturnItemsAreRequired
	}

	c.items = items
	return nil
}
