package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// WriteOffOrderCommandHandler handles writing off loan orders.
type WriteOffOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewWriteOffOrderCommandHandler creates the handler.
func NewWriteOffOrderCommandHandler(uowFactory LoanOrderUoWFactory, publisher ports.EventPublisher) WriteOffOrderCommandHandler {
	return WriteOffOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command inside a unit of work.
func (h *WriteOffOrderCommandHandler) Handle(ctx context.Context, cmd WriteOffOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			return order.WriteOff()
		})
}
