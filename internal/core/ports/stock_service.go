package ports

import (
	"context"

	"loans/internal/core/domain/model/kernel"
)

// StockMovement classifies a stock ledger entry recorded by the loan
// order workflow.
type StockMovement string

const (
	// MovementLoanedOut records stock leaving the warehouse on loan.
	MovementLoanedOut StockMovement = "loaned_out"

	// MovementReturnedFromLoan records stock coming back from loan.
	MovementReturnedFromLoan StockMovement = "returned_from_loan"
)

// StockItem describes one physical batch of a part in the warehouse.
type StockItem struct {
	ID       kernel.UUID
	PartID   kernel.UUID
	Quantity kernel.Quantity
}

// StockService is the contract towards the stock module. The loan order
// workflow uses it to check availability before allocating, to record
// movements in the stock ledger, and to reslot returned items.
//
// Availability answers must come from the same database transaction as
// the allocation writes when the implementation shares the store, so a
// concurrent shipment cannot overdraw a stock item between the check
// and the write.
type StockService interface {
	// UnallocatedQuantity reports how much of a stock item no
	// allocation of any kind claims yet.
	UnallocatedQuantity(ctx context.Context, stockItemID kernel.UUID) (kernel.Quantity, error)

	// ItemsForPart lists the stock items holding the given part with a
	// positive quantity, largest first.
	ItemsForPart(ctx context.Context, partID kernel.UUID) ([]StockItem, error)

	// RecordMovement appends an entry to the stock ledger for the
	// given item and loan order.
	RecordMovement(ctx context.Context, stockItemID kernel.UUID, movement StockMovement, quantity kernel.Quantity, orderID kernel.UUID) error

	// Relocate moves a stock item to another location, typically after
	// its return from loan.
	Relocate(ctx context.Context, stockItemID kernel.UUID, locationID kernel.UUID) error

	// SetStatus updates the condition flag of a stock item, for
	// example marking it damaged on return.
	SetStatus(ctx context.Context, stockItemID kernel.UUID, status string) error
}
