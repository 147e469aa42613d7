package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// ApproveOrderCommandHandler handles approving loan orders.
type ApproveOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewApproveOrderCommandHandler creates the handler.
func NewApproveOrderCommandHandler(uowFactory LoanOrderUoWFactory, publisher ports.EventPublisher) ApproveOrderCommandHandler {
	return ApproveOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command inside a unit of work.
func (h *ApproveOrderCommandHandler) Handle(ctx context.Context, cmd ApproveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			return order.Approve()
		})
}
