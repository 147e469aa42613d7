package services

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
)

// ErrStockItemNotFound is returned when no single stock item can cover
// the remaining unshipped quantity of a line. The planner never splits
// one line across stock items; lines that need splitting must be
// shipped explicitly, item by item.
var ErrStockItemNotFound = errors.New("no stock item covers the remaining quantity")

// StockCandidate is one stock item offered to the planner for a part,
// with the quantity of it not yet claimed by any allocation.
type StockCandidate struct {
	StockItemID kernel.UUID
	Available   kernel.Quantity
}

// StockCandidates supplies the candidate stock items for a part. The
// implementation must answer inside the caller's transaction so the
// plan and the subsequent shipment see the same stock state.
type StockCandidates func(partID kernel.UUID) ([]StockCandidate, error)

// ShipmentPlanner is a domain service that plans shipping every open
// line of a loan order in one go.
//
// Business rules:
//   - Only lines with remaining unshipped quantity are planned
//   - Each line draws from exactly one stock item
//   - The chosen stock item is the one with the most available
//     quantity that still covers the line's full remainder
//   - Planning fails as a whole if any line cannot be covered
//
// The planner only computes the shipment batch; applying it goes
// through Order.ShipLineItems with its usual validation.
type ShipmentPlanner struct{}

// NewShipmentPlanner creates a new ShipmentPlanner instance.
func NewShipmentPlanner() ShipmentPlanner {
	return ShipmentPlanner{}
}

// Plan computes the shipment batch that ships every open line in full.
//
// Parameters:
//   - order: The order to plan for (must be valid)
//   - candidates: Supplier of available stock items per part
//
// Returns:
//   - []loanorder.ShipmentItem: One entry per line with remaining quantity
//   - error: ErrStockItemNotFound if some line cannot be covered by a
//     single stock item, or validation/supplier errors
//
// The same stock item may serve several lines of different parts; the
// planner tracks what earlier lines of the plan already claimed so the
// batch as a whole stays within availability.
func (p ShipmentPlanner) Plan(order *loanorder.Order, candidates StockCandidates) ([]loanorder.ShipmentItem, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	claimed := make(map[kernel.UUID]kernel.Quantity)
	items := make([]loanorder.ShipmentItem, 0, len(order.LineItems()))

	for _, line := range order.LineItems() {
		if line.Status().IsProblem() {
			continue
		}

		remaining := line.RemainingToShip()
		if !remaining.IsPositive() {
			continue
		}

		available, err := candidates(line.PartID())
		if err != nil {
			return nil, err
		}

		best, err := p.findBestStockItem(remaining, available, claimed)
		if err != nil {
			return nil, err
		}

		claimed[best] = claimed[best].Add(remaining)
		items = append(items, loanorder.ShipmentItem{
			LineID:      line.ID(),
			StockItemID: best,
			Quantity:    remaining,
		})
	}

	return items, nil
}

// findBestStockItem picks the candidate with the most free quantity
// that still covers the full remainder, accounting for what earlier
// plan entries already claimed from it.
func (p ShipmentPlanner) findBestStockItem(
	remaining kernel.Quantity,
	available []StockCandidate,
	claimed map[kernel.UUID]kernel.Quantity,
) (kernel.UUID, error) {
	var (
		best     kernel.UUID
		bestFree kernel.Quantity
		found    bool
	)

	for _, candidate := range available {
		free, err := candidate.Available.Sub(claimed[candidate.StockItemID])
		if err != nil {
			continue
		}
		if free.GreaterThanOrEqual(remaining) && (!found || free.GreaterThan(bestFree)) {
			best = candidate.StockItemID
			bestFree = free
			found = true
		}
	}

	if !found {
		return kernel.UUID{}, ErrStockItemNotFound
	}
	return best, nil
}
