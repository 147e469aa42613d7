package commands

import (
	"errors"
	"fmt"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"
)

var ErrSellReturnedItemsCommandIsNotConstructed = errors.New(
	"SellReturnedItemsCommand must be created via NewSellReturnedItemsCommand constructor",
)

// SellReturnedItemsCommand represents a request to sell quantities that
// already came back from loan. The items are in stock, so no loan
// allocations are consumed; the sale is recorded on the line ledger.
type SellReturnedItemsCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	items        []ConversionItemInput
	salesOrderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSellReturnedItemsCommand creates a command to sell returned items.
// The batch must not be empty and no entry may carry a negative price.
func NewSellReturnedItemsCommand(
	orderID kernel.UUID,
	items []ConversionItemInput,
	salesOrderID *kernel.UUID,
) (SellReturnedItemsCommand, error) {
	cmd := SellReturnedItemsCommand{
		guard:        guard.NewConstructorGuard(),
		salesOrderID: salesOrderID,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return SellReturnedItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SellReturnedItemsCommand) Validate() error {
	return c.guard.Validate(ErrSellReturnedItemsCommandIsNotConstructed)
}

// OrderID returns the loan order being sold against.
func (c SellReturnedItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the sale batch.
func (c SellReturnedItemsCommand) Items() []ConversionItemInput {
	return c.items
}

// SalesOrderID returns the existing sales order to attach the sale to,
// or nil to create a new one.
func (c SellReturnedItemsCommand) SalesOrderID() *kernel.UUID {
	return c.salesOrderID
}

func (c *SellReturnedItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SellReturnedItemsCommand) setItems(items []ConversionItemInput) error {
	if len(items) == 0 {
		return ErrConversionItemsAreRequired
	}

	for _, item := range items {
		if item.Price.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				"price",
				fmt.Errorf("sale price for line %s must not be negative", item.LineID),
			)
		}
	}

	c.items = items
	return nil
}
