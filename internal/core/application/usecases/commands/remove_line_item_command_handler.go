package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// RemoveLineItemCommandHandler deletes an unshipped line item and
// refreshes the order total.
type RemoveLineItemCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
	options    loanorder.Options
}

// NewRemoveLineItemCommandHandler creates a handler for removing line items.
func NewRemoveLineItemCommandHandler(
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
	options loanorder.Options,
) RemoveLineItemCommandHandler {
	return RemoveLineItemCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		options:    options,
	}
}

// Handle processes the command inside a unit of work.
func (h *RemoveLineItemCommandHandler) Handle(ctx context.Context, cmd RemoveLineItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			if err := order.RemoveLineItem(cmd.LineID(), h.options); err != nil {
				return err
			}
			order.RecalculateTotalPrice()
			return nil
		})
}
