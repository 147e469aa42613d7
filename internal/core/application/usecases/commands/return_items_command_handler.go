package commands

import (
	"context"
	"time"

	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// ReturnItemsCommandHandler takes loaned quantities back into stock.
// The domain validates and applies the batch on the allocation ledger;
// the handler then mirrors each returned quantity into the stock
// ledger and applies the optional relocation and condition flag.
type ReturnItemsCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
	options    loanorder.Options
}

// NewReturnItemsCommandHandler creates a handler for returning items.
func NewReturnItemsCommandHandler(
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
	options loanorder.Options,
) ReturnItemsCommandHandler {
	return ReturnItemsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		options:    options,
	}
}

// Handle processes the return inside a unit of work. The stock port
// comes from the unit of work, so the ledger writes roll back together
// with the loan order if any entry fails.
func (h *ReturnItemsCommandHandler) Handle(ctx context.Context, cmd ReturnItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(ctx context.Context, uow LoanOrderUoW, order *loanorder.Order) error {
			batch := make([]loanorder.ReturnItem, 0, len(cmd.Items()))
			for _, item := range cmd.Items() {
				batch = append(batch, loanorder.ReturnItem{
					AllocationID: item.AllocationID,
					Quantity:     item.Quantity,
				})
			}

			touched, err := order.ReturnLineItems(batch, h.options, time.Now().UTC())
			if err != nil {
				return err
			}

			// touched is index-aligned with the batch.
			stock := uow.StockService()
			for i, item := range cmd.Items() {
				stockItemID := touched[i].StockItemID()
				if err = stock.RecordMovement(
					ctx, stockItemID, ports.MovementReturnedFromLoan, item.Quantity, order.ID()); err != nil {
					return err
				}
				if item.LocationID != nil {
					if err = stock.Relocate(ctx, stockItemID, *item.LocationID); err != nil {
						return err
					}
				}
				if item.StockStatus != "" {
					if err = stock.SetStatus(ctx, stockItemID, item.StockStatus); err != nil {
						return err
					}
				}
			}
			return nil
		})
}
