package commands

import (
	"context"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// SellReturnedItemsCommandHandler sells quantities that already came
// back from loan. Like the out-on-loan conversion it materializes a
// sales order and lines through the sales port of the unit of work,
// but no loan allocations are consumed since the stock is back on the
// shelf.
type SellReturnedItemsCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewSellReturnedItemsCommandHandler creates a handler for selling
// returned items.
func NewSellReturnedItemsCommandHandler(
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
) SellReturnedItemsCommandHandler {
	return SellReturnedItemsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the sale inside a unit of work. The whole batch is
// validated before any sales-side record is created.
func (h *SellReturnedItemsCommandHandler) Handle(ctx context.Context, cmd SellReturnedItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(ctx context.Context, uow LoanOrderUoW, order *loanorder.Order) error {
			// Pre-validate with per-line totals so two entries cannot
			// jointly sell more than a line has available.
			requested := make(map[kernel.UUID]kernel.Quantity, len(cmd.Items()))
			for _, item := range cmd.Items() {
				total := requested[item.LineID].Add(item.Quantity)
				if err := order.ValidateReturnedSale(item.LineID, total); err != nil {
					return err
				}
				requested[item.LineID] = total
			}

			sales := uow.SalesOrderService()
			salesOrderID, err := resolveSalesOrder(ctx, sales, order, cmd.SalesOrderID())
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			for _, item := range cmd.Items() {
				line, lineErr := order.LineByID(item.LineID)
				if lineErr != nil {
					return lineErr
				}

				salesLineID, addErr := sales.AddLine(ctx, salesOrderID, line.PartID(), item.Quantity, item.Price)
				if addErr != nil {
					return addErr
				}

				if _, err = order.SellReturnedItems(
					item.LineID, item.Quantity, item.Price, salesLineID, now); err != nil {
					return err
				}
			}
			return nil
		})
}
