package commands

import (
	"errors"
	"fmt"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrConvertLineItemsCommandIsNotConstructed = errors.New(
		"ConvertLineItemsCommand must be created via NewConvertLineItemsCommand constructor",
	)
	ErrConversionItemsAreRequired = errors.New("at least one conversion item is required")
)

// ConversionItemInput is one entry of a conversion batch: sell Quantity
// of the line's out-on-loan items to the borrower at the given unit
// price.
type ConversionItemInput struct {
	LineID   kernel.UUID
	Quantity kernel.Quantity
	Price    decimal.Decimal
}

// ConvertLineItemsCommand represents a request to sell out-on-loan
// quantities to the borrower. All entries end up on one sales order:
// the one given, or a freshly created one.
type ConvertLineItemsCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	items        []ConversionItemInput
	salesOrderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewConvertLineItemsCommand creates a command to convert a batch of
// line quantities to a sale. The batch must not be empty and no entry
// may carry a negative price; quantity bounds are validated in the
// domain.
func NewConvertLineItemsCommand(
	orderID kernel.UUID,
	items []ConversionItemInput,
	salesOrderID *kernel.UUID,
) (ConvertLineItemsCommand, error) {
	cmd := ConvertLineItemsCommand{
		guard:        guard.NewConstructorGuard(),
		salesOrderID: salesOrderID,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return ConvertLineItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConvertLineItemsCommand) Validate() error {
	return c.guard.Validate(ErrConvertLineItemsCommandIsNotConstructed)
}

// OrderID returns the loan order being converted.
func (c ConvertLineItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the conversion batch.
func (c ConvertLineItemsCommand) Items() []ConversionItemInput {
	return c.items
}

// SalesOrderID returns the existing sales order to attach the sale to,
// or nil to create a new one.
func (c ConvertLineItemsCommand) SalesOrderID() *kernel.UUID {
	return c.salesOrderID
}

func (c *ConvertLineItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConvertLineItemsCommand) setItems(items []ConversionItemInput) error {
	if len(items) == 0 {
		return ErrConversionItemsAreRequired
	}

	for _, item := range items {
		if item.Price.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				"price",
				fmt.Errorf("conversion price for line %s must not be negative", item.LineID),
			)
		}
	}

	c.items = items
	return nil
}
