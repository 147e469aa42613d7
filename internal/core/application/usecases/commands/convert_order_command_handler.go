package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// ConvertOrderCommandHandler handles converting loan orders to sales.
type ConvertOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewConvertOrderCommandHandler creates the handler.
func NewConvertOrderCommandHandler(uowFactory LoanOrderUoWFactory, publisher ports.EventPublisher) ConvertOrderCommandHandler {
	return ConvertOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command inside a unit of work.
func (h *ConvertOrderCommandHandler) Handle(ctx context.Context, cmd ConvertOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			return order.ConvertToSale()
		})
}
