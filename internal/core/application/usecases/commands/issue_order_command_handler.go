package commands

import (
	"context"
	"time"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// IssueOrderCommandHandler handles issuing loan orders.
type IssueOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewIssueOrderCommandHandler creates the handler.
func NewIssueOrderCommandHandler(uowFactory LoanOrderUoWFactory, publisher ports.EventPublisher) IssueOrderCommandHandler {
	return IssueOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the command inside a unit of work.
func (h *IssueOrderCommandHandler) Handle(ctx context.Context, cmd IssueOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			return order.Issue(time.Now().UTC())
		})
}
