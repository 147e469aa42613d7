package commands

import (
	"context"
	"time"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// ReturnOrderCommandHandler handles marking whole loan orders returned.
type ReturnOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewReturnOrderCommandHandler creates the handler.
func NewReturnOrderCommandHandler(uowFactory LoanOrderUoWFactory, publisher ports.EventPublisher) ReturnOrderCommandHandler {
	return ReturnOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command inside a unit of work.
func (h *ReturnOrderCommandHandler) Handle(ctx context.Context, cmd ReturnOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			return order.MarkReturned(time.Now().UTC())
		})
}
