package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// HoldOrderCommandHandler handles holding loan orders.
type HoldOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewHoldOrderCommandHandler creates the handler.
func NewHoldOrderCommandHandler(uowFactory LoanOrderUoWFactory, publisher ports.EventPublisher) HoldOrderCommandHandler {
	return HoldOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command inside a unit of work.
func (h *HoldOrderCommandHandler) Handle(ctx context.Context, cmd HoldOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			return order.Hold()
		})
}
