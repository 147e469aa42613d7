package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// AddLineItemCommandHandler adds a line item to an existing order and
// refreshes the order total.
type AddLineItemCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
	options    loanorder.Options
}

// NewAddLineItemCommandHandler creates a handler for adding line items.
func NewAddLineItemCommandHandler(
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
	options loanorder.Options,
) AddLineItemCommandHandler {
	return AddLineItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		options:    options,
	}
}

// Handle processes the command inside a unit of work.
func (h *AddLineItemCommandHandler) Handle(ctx context.Context, cmd AddLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			_, err := order.AddLineItem(cmd.LineID(), cmd.PartID(), cmd.Quantity(), cmd.LoanPrice(), h.options)
			if err != nil {
				return err
			}
			order.RecalculateTotalPrice()
			return nil
		})
}
