package loanorder

import (
	"errors"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"
)

// Allocation binds a quantity of a concrete stock item to a line item.
// It is the unit of quantity bookkeeping on the stock side: quantity is
// what is still out on loan from this stock item, returned accumulates
// what has come back. Conversion to a sale never decrements quantity;
// instead the allocation is flagged converted and linked to the sales
// allocation that replaced it.
type Allocation struct {
	id                kernel.UUID
	stockItemID       kernel.UUID
	quantity          kernel.Quantity
	returned          kernel.Quantity
	isConverted       bool
	salesAllocationID *kernel.UUID
	createdAt         time.Time

	guard guard.ConstructorGuard
}

// newAllocation creates an allocation for a freshly shipped quantity.
// Only the owning Order creates allocations, so this stays unexported.
func newAllocation(id kernel.UUID, stockItemID kernel.UUID, quantity kernel.Quantity, at time.Time) (*Allocation, error) {
	a := &Allocation{
		guard:     guard.NewConstructorGuard(),
		createdAt: at,
	}

	if err := errors.Join(
		a.setID(id),
		a.setStockItemID(stockItemID),
		a.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAllocation reconstructs an allocation from persistence.
// Used by repository implementations only.
func RestoreAllocation(
	id kernel.UUID,
	stockItemID kernel.UUID,
	quantity kernel.Quantity,
	returned kernel.Quantity,
	isConverted bool,
	salesAllocationID *kernel.UUID,
	createdAt time.Time,
) (*Allocation, error) {
	a := &Allocation{
		guard:             guard.NewConstructorGuard(),
		returned:          returned,
		isConverted:       isConverted,
		salesAllocationID: salesAllocationID,
		createdAt:         createdAt,
	}

	if err := errors.Join(
		a.setID(id),
		a.setStockItemID(stockItemID),
	); err != nil {
		return nil, err
	}
	a.quantity = quantity

	return a, nil
}

// Validate ensures the allocation was built via its constructors.
func (a *Allocation) Validate() error {
	if a == nil {
		return guard.ErrDefaultConstructorGuard
	}
	return a.guard.Validate(guard.ErrDefaultConstructorGuard)
}

// ID returns the allocation's unique identifier.
func (a *Allocation) ID() kernel.UUID {
	return a.id
}

// StockItemID returns the stock item this allocation draws from.
func (a *Allocation) StockItemID() kernel.UUID {
	return a.stockItemID
}

// Quantity returns how much of the stock item is still out on loan.
func (a *Allocation) Quantity() kernel.Quantity {
	return a.quantity
}

// Returned returns the cumulative quantity that has come back.
func (a *Allocation) Returned() kernel.Quantity {
	return a.returned
}

// IsConverted reports whether this allocation was turned into a sale.
func (a *Allocation) IsConverted() bool {
	return a.isConverted
}

// SalesAllocationID returns the sales-side allocation that replaced
// this one after conversion. Nil until the allocation is converted.
func (a *Allocation) SalesAllocationID() *kernel.UUID {
	return a.salesAllocationID
}

// CreatedAt returns when the allocation was first made. Conversions
// consume allocations in this order, oldest first.
func (a *Allocation) CreatedAt() time.Time {
	return a.createdAt
}

// IsEqual compares two allocations by their unique identifiers.
func (a *Allocation) IsEqual(other *Allocation) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// increase adds a freshly shipped quantity to the outstanding amount.
func (a *Allocation) increase(quantity kernel.Quantity) {
	a.quantity = a.quantity.Add(quantity)
}

// returnQuantity moves quantity from outstanding to returned.
// The requested amount must not exceed what is outstanding.
func (a *Allocation) returnQuantity(quantity kernel.Quantity) error {
	remaining, err := a.quantity.Sub(quantity)
	if err != nil {
		return errs.NewValueIsOutOfRangeError("quantity", quantity.String(), "0", a.quantity.String())
	}
	a.quantity = remaining
	a.returned = a.returned.Add(quantity)
	return nil
}

// settle closes the allocation as fully returned regardless of how much
// is still outstanding. Used when a whole order is marked returned.
func (a *Allocation) settle() {
	a.returned = a.returned.Add(a.quantity)
	a.quantity = kernel.ZeroQuantity()
}

// markConverted flags the allocation as sold and links the sales-side
// allocation that now claims the stock. The outstanding quantity is
// deliberately left untouched: the stock never came back.
func (a *Allocation) markConverted(salesAllocationID kernel.UUID) {
	a.isConverted = true
	a.salesAllocationID = &salesAllocationID
}

func (a *Allocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Allocation) setStockItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.stockItemID = id
	return nil
}

func (a *Allocation) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("allocation quantity must be greater than zero"))
	}
	a.quantity = quantity
	return nil
}
