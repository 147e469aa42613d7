package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// CancelOrderCommandHandler handles cancelling loan orders.
type CancelOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates the handler.
func NewCancelOrderCommandHandler(uowFactory LoanOrderUoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command inside a unit of work.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			return order.Cancel()
		})
}
