package commands

import (
	"context"
	"time"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for opening loan
// orders. Creates the aggregate in Pending status and publishes the
// creation event after the transaction commits.
type CreateOrderCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
	options    loanorder.Options
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// Requires a LoanOrderUoWFactory for transactional persistence, an
// event publisher and the tenant options.
func NewCreateOrderCommandHandler(
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
	options loanorder.Options,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		options:    options,
	}
}

// Handle processes the order creation command.
// Uses a transaction to ensure the order is properly persisted or
// rolled back on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	order, err := loanorder.NewOrder(
		cmd.OrderID(),
		cmd.Reference(),
		cmd.BorrowerID(),
		cmd.ResponsibleID(),
		cmd.Description(),
		cmd.DueDate(),
		time.Now().UTC(),
		h.options,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LoanOrderRepository().Add(ctx, order); err != nil {
		return err
	}

	events := order.Events()
	order.ClearEvents()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.publisher != nil {
		h.publisher.Publish(ctx, events)
	}
	return nil
}
