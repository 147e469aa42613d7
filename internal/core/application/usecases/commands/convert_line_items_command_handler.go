package commands

import (
	"context"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// ConvertLineItemsCommandHandler sells out-on-loan quantities to the
// borrower. For each batch entry it plans how the sale draws on the
// loan allocations, materializes the sale side through the sales port
// (order, line, one sales allocation per consumed loan allocation),
// and finalizes the conversion on the aggregate.
//
// The whole batch is validated before any sales-side record is
// created, so a bad entry aborts the command with nothing written.
// The sales port comes from the unit of work, so a failing entry also
// rolls back the sales-side records of the earlier ones.
type ConvertLineItemsCommandHandler struct {
	uowFactory LoanOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewConvertLineItemsCommandHandler creates a handler for loan-to-sale
// conversions.
func NewConvertLineItemsCommandHandler(
	uowFactory LoanOrderUoWFactory,
	publisher ports.EventPublisher,
) ConvertLineItemsCommandHandler {
	return ConvertLineItemsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the conversion inside a unit of work.
func (h *ConvertLineItemsCommandHandler) Handle(ctx context.Context, cmd ConvertLineItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.publisher, cmd.OrderID(),
		func(ctx context.Context, uow LoanOrderUoW, order *loanorder.Order) error {
			// Pre-validate with per-line totals so two entries cannot
			// jointly convert more than a line has out on loan.
			requested := make(map[kernel.UUID]kernel.Quantity, len(cmd.Items()))
			for _, item := range cmd.Items() {
				total := requested[item.LineID].Add(item.Quantity)
				if err := order.ValidateLineConversion(item.LineID, total); err != nil {
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

				transfers, planErr := order.PlanLineConversion(item.LineID, item.Quantity)
				if planErr != nil {
					return planErr
				}

				salesLineID, addErr := sales.AddLine(ctx, salesOrderID, line.PartID(), item.Quantity, item.Price)
				if addErr != nil {
					return addErr
				}

				applied := make([]loanorder.AppliedTransfer, 0, len(transfers))
				for _, transfer := range transfers {
					salesAllocationID, allocErr := sales.Allocate(
						ctx, salesLineID, transfer.StockItemID, transfer.Quantity)
					if allocErr != nil {
						return allocErr
					}
					applied = append(applied, loanorder.AppliedTransfer{
						AllocationID:      transfer.AllocationID,
						SalesAllocationID: salesAllocationID,
					})
				}

				if _, err = order.ApplyLineConversion(
					item.LineID, item.Quantity, item.Price, salesLineID, applied, now); err != nil {
					return err
				}
			}
			return nil
		})
}
