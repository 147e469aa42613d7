package loanorder

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// LineItem is a request for a quantity of one part on a loan order.
// It carries the quantity ledger that every stock movement flows
// through:
//
//	quantity   what the borrower asked for
//	shipped    what has left the warehouse (monotonic)
//	returned   what has come back (monotonic)
//	converted  what was sold while out on loan (monotonic)
//	sold       what was sold after having been returned (monotonic)
//
// The ledger maintains shipped <= quantity, returned + converted <=
// shipped and sold <= returned on every mutation. The line status is
// derived from the ledger; only Lost and Damaged are set out of band.
type LineItem struct {
	id        kernel.UUID
	partID    kernel.UUID
	reference string
	notes     string

	quantity  kernel.Quantity
	shipped   kernel.Quantity
	returned  kernel.Quantity
	converted kernel.Quantity
	sold      kernel.Quantity

	loanPrice *decimal.Decimal
	status    LineStatus

	allocations []*Allocation
	conversions []*Conversion

	guard guard.ConstructorGuard
}

// NewLineItem creates a line item for a part with a positive requested
// quantity. An optional loan price records what the loan itself costs
// the borrower per unit.
func NewLineItem(
	id kernel.UUID,
	partID kernel.UUID,
	quantity kernel.Quantity,
	loanPrice *decimal.Decimal,
) (*LineItem, error) {
	l := &LineItem{
		guard:  guard.NewConstructorGuard(),
		status: LinePending,
	}

	if err := errors.Join(
		l.setID(id),
		l.setPartID(partID),
		l.setQuantity(quantity),
		l.setLoanPrice(loanPrice),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// RestoreLineItem reconstructs a line item from persistence together
// with its allocations and conversion ledger. Allocations must be
// supplied oldest first. Used by repository implementations only.
func RestoreLineItem(
	id kernel.UUID,
	partID kernel.UUID,
	reference string,
	notes string,
	quantity kernel.Quantity,
	shipped kernel.Quantity,
	returned kernel.Quantity,
	converted kernel.Quantity,
	sold kernel.Quantity,
	loanPrice *decimal.Decimal,
	status LineStatus,
	allocations []*Allocation,
	conversions []*Conversion,
) (*LineItem, error) {
	l := &LineItem{
		guard:       guard.NewConstructorGuard(),
		reference:   reference,
		notes:       notes,
		shipped:     shipped,
		returned:    returned,
		converted:   converted,
		sold:        sold,
		allocations: allocations,
		conversions: conversions,
	}

	if err := errors.Join(
		l.setID(id),
		l.setPartID(partID),
		l.setQuantity(quantity),
		l.setLoanPrice(loanPrice),
		l.setStatus(status),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the line item was built via its constructors.
func (l *LineItem) Validate() error {
	if l == nil {
		return guard.ErrDefaultConstructorGuard
	}
	return l.guard.Validate(guard.ErrDefaultConstructorGuard)
}

// ID returns the line item's unique identifier.
func (l *LineItem) ID() kernel.UUID {
	return l.id
}

// PartID returns the part this line requests.
func (l *LineItem) PartID() kernel.UUID {
	return l.partID
}

// Reference returns the line's short reference.
func (l *LineItem) Reference() string {
	return l.reference
}

// Notes returns free-form notes attached to the line.
func (l *LineItem) Notes() string {
	return l.notes
}

// Quantity returns the requested quantity.
func (l *LineItem) Quantity() kernel.Quantity {
	return l.quantity
}

// Shipped returns the cumulative shipped quantity.
func (l *LineItem) Shipped() kernel.Quantity {
	return l.shipped
}

// Returned returns the cumulative returned quantity.
func (l *LineItem) Returned() kernel.Quantity {
	return l.returned
}

// Converted returns the cumulative quantity sold while out on loan.
func (l *LineItem) Converted() kernel.Quantity {
	return l.converted
}

// Sold returns the cumulative quantity sold after return.
func (l *LineItem) Sold() kernel.Quantity {
	return l.sold
}

// LoanPrice returns the per-unit loan fee, or nil when the loan is free.
func (l *LineItem) LoanPrice() *decimal.Decimal {
	return l.loanPrice
}

// Status returns the derived line status.
func (l *LineItem) Status() LineStatus {
	return l.status
}

// Allocations returns the stock allocations backing this line,
// oldest first.
func (l *LineItem) Allocations() []*Allocation {
	return l.allocations
}

// Conversions returns the conversion ledger of this line.
func (l *LineItem) Conversions() []*Conversion {
	return l.conversions
}

// IsEqual compares two line items by their unique identifiers.
func (l *LineItem) IsEqual(other *LineItem) bool {
	return other != nil && l.id.IsEqual(other.id)
}

// RemainingToShip returns how much of the requested quantity has not
// shipped yet.
func (l *LineItem) RemainingToShip() kernel.Quantity {
	return l.mustSub(l.quantity, l.shipped)
}

// OnLoan returns how much is currently with the borrower, including
// quantity that has been sold but physically never came back.
func (l *LineItem) OnLoan() kernel.Quantity {
	return l.mustSub(l.shipped, l.returned)
}

// RemainingOnLoan returns how much is out on loan and still eligible
// for return or conversion: shipped minus returned minus converted.
func (l *LineItem) RemainingOnLoan() kernel.Quantity {
	return l.mustSub(l.OnLoan(), l.converted)
}

// AvailableReturnedToSell returns how much returned quantity has not
// been sold yet.
func (l *LineItem) AvailableReturnedToSell() kernel.Quantity {
	return l.mustSub(l.returned, l.sold)
}

// AllocatedQuantity sums the outstanding quantity over all allocations.
func (l *LineItem) AllocatedQuantity() kernel.Quantity {
	total := kernel.ZeroQuantity()
	for _, a := range l.allocations {
		total = total.Add(a.Quantity())
	}
	return total
}

// IsFullyAllocated reports whether the outstanding allocations cover
// the full requested quantity.
func (l *LineItem) IsFullyAllocated() bool {
	return l.AllocatedQuantity().GreaterThanOrEqual(l.RemainingToShip())
}

// IsCompleted reports whether everything shipped has been accounted
// for by returns or conversions.
func (l *LineItem) IsCompleted() bool {
	return l.status.IsComplete()
}

// IsFullyConverted reports whether everything shipped was sold.
func (l *LineItem) IsFullyConverted() bool {
	return l.shipped.IsPositive() && l.converted.GreaterThanOrEqual(l.shipped)
}

// IsPartiallyConverted reports whether some but not all of the shipped
// quantity was sold while out on loan.
func (l *LineItem) IsPartiallyConverted() bool {
	return l.converted.IsPositive() && l.converted.LessThan(l.shipped)
}

// IsOverallocated reports whether the outstanding allocations exceed
// the requested quantity.
func (l *LineItem) IsOverallocated() bool {
	return l.AllocatedQuantity().GreaterThan(l.quantity)
}

// MarkLost flags the line as lost while out on loan.
// The quantity ledger is left as is; the order closes via write-off.
func (l *LineItem) MarkLost() {
	l.status = LineLost
}

// MarkDamaged flags the line as returned damaged.
func (l *LineItem) MarkDamaged() {
	l.status = LineDamaged
}

// ship moves quantity into the shipped column. The caller has already
// validated the amount against RemainingToShip.
func (l *LineItem) ship(quantity kernel.Quantity) {
	l.shipped = l.shipped.Add(quantity)
	if l.shipped.GreaterThanOrEqual(l.quantity) {
		l.status = LineShipped
	}
}

// returnQuantity moves quantity into the returned column. The caller
// has already validated the amount against the allocation ledger.
// The line closes as returned only once the full requested quantity
// has come back; a partially shipped line stays open even when
// everything that did ship is back.
func (l *LineItem) returnQuantity(quantity kernel.Quantity) {
	l.returned = l.returned.Add(quantity)
	if l.returned.GreaterThanOrEqual(l.quantity) {
		l.status = LineReturned
	}
}

// forceReturn settles the whole line as returned: every outstanding
// allocation is closed and the returned column catches up with shipped.
// Used when the order as a whole is marked returned.
func (l *LineItem) forceReturn() {
	for _, a := range l.allocations {
		if a.Quantity().IsPositive() {
			a.settle()
		}
	}
	l.returned = l.shipped
	if l.shipped.IsPositive() {
		l.status = LineReturned
	}
}

// recordConversion appends a ledger entry for a sale of out-on-loan
// quantity and refreshes the derived status.
func (l *LineItem) recordConversion(conversion *Conversion) {
	l.conversions = append(l.conversions, conversion)
	l.converted = l.converted.Add(conversion.Quantity())

	if l.IsFullyConverted() {
		l.status = LineConvertedToSale
	} else {
		l.status = LinePartiallyConverted
	}
}

// recordReturnedSale appends a ledger entry for a sale of already
// returned quantity. The line status does not change: the items were
// back in stock, the loan side of the line is untouched.
func (l *LineItem) recordReturnedSale(conversion *Conversion) {
	l.conversions = append(l.conversions, conversion)
	l.sold = l.sold.Add(conversion.Quantity())
}

// allocationForStockItem finds the allocation drawing from the given
// stock item, or nil if none exists yet.
func (l *LineItem) allocationForStockItem(stockItemID kernel.UUID) *Allocation {
	for _, a := range l.allocations {
		if a.StockItemID().IsEqual(stockItemID) {
			return a
		}
	}
	return nil
}

// allocationByID finds an allocation of this line by its identifier.
func (l *LineItem) allocationByID(id kernel.UUID) *Allocation {
	for _, a := range l.allocations {
		if a.ID().IsEqual(id) {
			return a
		}
	}
	return nil
}

// mustSub subtracts b from a. The ledger invariants guarantee the
// result is never negative; a zero quantity is returned if they were
// ever violated by hand-edited data.
func (l *LineItem) mustSub(a, b kernel.Quantity) kernel.Quantity {
	result, err := a.Sub(b)
	if err != nil {
		return kernel.ZeroQuantity()
	}
	return result
}

func (l *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *LineItem) setPartID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.partID = id
	return nil
}

func (l *LineItem) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("line item quantity must be greater than zero"))
	}
	l.quantity = quantity
	return nil
}

func (l *LineItem) setLoanPrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("loan price", errors.New("loan price must not be negative"))
	}
	l.loanPrice = price
	return nil
}

func (l *LineItem) setStatus(status LineStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	l.status = status
	return nil
}
