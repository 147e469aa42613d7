package commands

import (
	"context"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// ShipItemsCommandHandler ships quantities from stock items against a
// loan order. The domain validates the whole batch against line
// remainders and stock availability before anything mutates; the
// handler then mirrors each shipped quantity into the stock ledger.
type ShipItemsCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewShipItemsCommandHandler creates a handler for shipping items.
func NewShipItemsCommandHandler(
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
) ShipItemsCommandHandler {
	return ShipItemsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the shipment inside a unit of work. The stock port
// comes from the unit of work, so availability reads and ledger writes
// share the transaction with the loan order and concurrent shipments
// cannot jointly overdraw a stock item.
func (h *ShipItemsCommandHandler) Handle(ctx context.Context, cmd ShipItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(ctx context.Context, uow LoanOrderUoW, order *loanorder.Order) error {
			stock := uow.StockService()
			availability := func(stockItemID kernel.UUID) (kernel.Quantity, error) {
				return stock.UnallocatedQuantity(ctx, stockItemID)
			}

			if _, err := order.ShipLineItems(cmd.Items(), availability, time.Now().UTC()); err != nil {
				return err
			}

			for _, item := range cmd.Items() {
				if err := stock.RecordMovement(
					ctx, item.StockItemID, ports.MovementLoanedOut, item.Quantity, order.ID()); err != nil {
					return err
				}
			}
			return nil
		})
}
