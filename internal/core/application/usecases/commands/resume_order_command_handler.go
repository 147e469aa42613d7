package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// ResumeOrderCommandHandler handles resuming held loan orders.
type ResumeOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewResumeOrderCommandHandler creates the handler.
func NewResumeOrderCommandHandler(uowFactory LoanOrderUoWFactory, publisher ports.EventPublisher) ResumeOrderCommandHandler {
	return ResumeOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command inside a unit of work.
func (h *ResumeOrderCommandHandler) Handle(ctx context.Context, cmd ResumeOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			return order.Resume()
		})
}
