package commands

import (
	"context"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// mutateOrder runs one aggregate mutation inside a unit of work: load
// the order, apply mutate, persist, commit, and publish the recorded
// domain events after the commit succeeded. Every handler that touches
// a single existing order goes through it.
func mutateOrder(
	ctx context.Context,
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
	orderID kernel.UUID,
	mutate func(ctx context.Context, uow LoanOrderUoW, order *loanorder.Order) error,
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LoanOrderRepository()
	order, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = mutate(ctx, uow, order); err != nil {
		return err
	}

	if err = repo.Update(ctx, order); err != nil {
		return err
	}

	events := order.Events()
	order.ClearEvents()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if publisher != nil && len(events) > 0 {
		publisher.Publish(ctx, events)
	}
	return nil
}
