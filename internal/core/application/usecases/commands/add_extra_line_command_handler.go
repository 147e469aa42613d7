package commands

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// AddExtraLineCommandHandler attaches an extra charge line to an order
// and refreshes the order total.
type AddExtraLineCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
	options    loanorder.Options
}

// NewAddExtraLineCommandHandler creates a handler for adding extra lines.
func NewAddExtraLineCommandHandler(
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
	options loanorder.Options,
) AddExtraLineCommandHandler {
	return AddExtraLineCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		options:    options,
	}
}

// Handle processes the command inside a unit of work.
func (h *AddExtraLineCommandHandler) Handle(ctx context.Context, cmd AddExtraLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	extraLine, err := loanorder.NewExtraLine(
		cmd.LineID(), cmd.Reference(), cmd.Description(), cmd.Quantity(), cmd.Price(), cmd.Notes())
	if err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(_ context.Context, _ LoanOrderUoW, order *loanorder.Order) error {
			if err := order.AddExtraLine(extraLine, h.options); err != nil {
				return err
			}
			order.RecalculateTotalPrice()
			return nil
		})
}
