package commands

import (
	"context"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/domain/services"
	"loans/internal/core/ports"
)

// ShipAllCommandHandler ships every open line of an order in full.
// The shipment planner picks, per line, the single stock item with the
// most unallocated quantity that still covers the line's remainder;
// the resulting batch then goes through the same domain shipment path
// as an explicit one.
type ShipAllCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	planner    services.ShipmentPlanner
	publisher  ports.EventPublisher
}

// NewShipAllCommandHandler creates a handler for shipping whole orders.
func NewShipAllCommandHandler(
	uowFactory LoanOrderUoWFactory,
	planner services.ShipmentPlanner,
	publisher ports.EventPublisher,
) ShipAllCommandHandler {
	return ShipAllCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		publisher:  publisher,
	}
}

// Handle plans and applies the shipment inside one unit of work.
// Planning, availability reads and ledger writes all run on the stock
// port of the unit of work, under the transaction of the loan order.
// Planning fails as a whole if any line cannot be covered by a single
// stock item, leaving the order untouched.
func (h *ShipAllCommandHandler) Handle(ctx context.Context, cmd ShipAllCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(ctx context.Context, uow LoanOrderUoW, order *loanorder.Order) error {
			stock := uow.StockService()
			candidates := func(partID kernel.UUID) ([]services.StockCandidate, error) {
				stockItems, err := stock.ItemsForPart(ctx, partID)
				if err != nil {
					return nil, err
				}

				result := make([]services.StockCandidate, 0, len(stockItems))
				for _, item := range stockItems {
					unallocated, unallocErr := stock.UnallocatedQuantity(ctx, item.ID)
					if unallocErr != nil {
						return nil, unallocErr
					}
					result = append(result, services.StockCandidate{
						StockItemID: item.ID,
						Available:   unallocated,
					})
				}
				return result, nil
			}

			items, err := h.planner.Plan(order, candidates)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return nil
			}

			availability := func(stockItemID kernel.UUID) (kernel.Quantity, error) {
				return stock.UnallocatedQuantity(ctx, stockItemID)
			}

			if _, err = order.ShipLineItems(items, availability, time.Now().UTC()); err != nil {
				return err
			}

			for _, item := range items {
				if err = stock.RecordMovement(
					ctx, item.StockItemID, ports.MovementLoanedOut, item.Quantity, order.ID()); err != nil {
					return err
				}
			}
			return nil
		})
}
