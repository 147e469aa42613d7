package loanorder

import (
	"errors"
	"fmt"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the loan order domain. It owns the
// line items, their stock allocations and conversion ledgers, and the
// extra charge lines, and it is the only place order and line state
// may change.
//
// Order maintains these invariants:
//   - Status changes only through the fixed transition table
//   - Every quantity ledger on every line stays consistent on every
//     mutation: shipped never exceeds requested, returns and
//     conversions never exceed what is out on loan
//   - Batch operations validate every item before mutating anything
//   - Orders in a terminal group are locked against edits unless the
//     tenant options allow it
//
// Mutations record domain events on the aggregate; the application
// layer publishes them after the surrounding transaction commits.
type Order struct {
	id            kernel.UUID
	reference     string
	description   string
	borrowerID    kernel.UUID
	responsibleID *kernel.UUID

	status Status

	creationDate time.Time
	issueDate    *time.Time
	dueDate      *time.Time
	shipDate     *time.Time
	returnDate   *time.Time

	totalPrice decimal.Decimal

	lines      []*LineItem
	extraLines []*ExtraLine

	events []Event

	guard guard.ConstructorGuard
}

// ShipmentItem is one entry of a shipment batch: ship Quantity of the
// line's part from the given stock item.
type ShipmentItem struct {
	LineID      kernel.UUID
	StockItemID kernel.UUID
	Quantity    kernel.Quantity
}

// ReturnItem is one entry of a return batch: take Quantity back against
// the given allocation.
type ReturnItem struct {
	AllocationID kernel.UUID
	Quantity     kernel.Quantity
}

// ConversionTransfer describes how a planned conversion draws on one
// loan allocation. The application layer mirrors each transfer as a
// sales-side allocation before applying the conversion.
type ConversionTransfer struct {
	AllocationID kernel.UUID
	StockItemID  kernel.UUID
	Quantity     kernel.Quantity
}

// AppliedTransfer links a consumed loan allocation to the sales-side
// allocation that now claims its stock.
type AppliedTransfer struct {
	AllocationID      kernel.UUID
	SalesAllocationID kernel.UUID
}

// StockAvailability reports the unallocated quantity of a stock item.
// Shipment validation calls it once per distinct stock item; the
// implementation must answer inside the caller's transaction so the
// check and the allocation see the same stock state.
type StockAvailability func(stockItemID kernel.UUID) (kernel.Quantity, error)

// NewOrder creates a loan order in Pending status.
//
// The reference must be non-empty and is unique per tenant (enforced by
// persistence). A responsible owner is required when the tenant options
// say so. The due date, when given, must not precede the creation date.
func NewOrder(
	id kernel.UUID,
	reference string,
	borrowerID kernel.UUID,
	responsibleID *kernel.UUID,
	description string,
	dueDate *time.Time,
	createdAt time.Time,
	opts Options,
) (*Order, error) {
	o := &Order{
		guard:        guard.NewConstructorGuard(),
		status:       Pending,
		description:  description,
		creationDate: createdAt,
		totalPrice:   decimal.Zero,
	}

	if err := errors.Join(
		o.setID(id),
		o.setReference(reference),
		o.setBorrowerID(borrowerID),
		o.setResponsibleID(responsibleID, opts),
		o.setDueDate(dueDate),
	); err != nil {
		return nil, err
	}

	o.recordEvent(EventOrderCreated, nil, nil)
	return o, nil
}

// RestoreOrder reconstructs an order from persistence together with its
// lines and extra lines. No events are recorded. Used by repository
// implementations only.
func RestoreOrder(
	id kernel.UUID,
	reference string,
	borrowerID kernel.UUID,
	responsibleID *kernel.UUID,
	description string,
	status Status,
	creationDate time.Time,
	issueDate *time.Time,
	dueDate *time.Time,
	shipDate *time.Time,
	returnDate *time.Time,
	totalPrice decimal.Decimal,
	lines []*LineItem,
	extraLines []*ExtraLine,
) (*Order, error) {
	o := &Order{
		guard:        guard.NewConstructorGuard(),
		description:  description,
		creationDate: creationDate,
		issueDate:    issueDate,
		shipDate:     shipDate,
		returnDate:   returnDate,
		totalPrice:   totalPrice,
		lines:        lines,
		extraLines:   extraLines,
	}

	if err := errors.Join(
		o.setID(id),
		o.setReference(reference),
		o.setBorrowerID(borrowerID),
		o.setStatus(status),
		o.setDueDate(dueDate),
	); err != nil {
		return nil, err
	}
	o.responsibleID = responsibleID

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Reference returns the order's unique human-readable reference.
func (o *Order) Reference() string {
	return o.reference
}

// Description returns the order description.
func (o *Order) Description() string {
	return o.description
}

// BorrowerID returns the customer borrowing the items.
func (o *Order) BorrowerID() kernel.UUID {
	return o.borrowerID
}

// ResponsibleID returns the owner responsible for the order,
// or nil when none is set.
func (o *Order) ResponsibleID() *kernel.UUID {
	return o.responsibleID
}

// Status returns the current order status.
func (o *Order) Status() Status {
	return o.status
}

// CreationDate returns when the order was created.
func (o *Order) CreationDate() time.Time {
	return o.creationDate
}

// IssueDate returns when the order was issued, or nil.
func (o *Order) IssueDate() *time.Time {
	return o.issueDate
}

// DueDate returns when the loan is due back, or nil for open-ended loans.
func (o *Order) DueDate() *time.Time {
	return o.dueDate
}

// ShipDate returns when the first items left the warehouse, or nil.
func (o *Order) ShipDate() *time.Time {
	return o.shipDate
}

// ReturnDate returns when the order completed as returned, or nil.
func (o *Order) ReturnDate() *time.Time {
	return o.returnDate
}

// TotalPrice returns the loan-side total: loan fees plus extra charges.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

// LineItems returns the order's line items.
func (o *Order) LineItems() []*LineItem {
	return o.lines
}

// ExtraLines returns the order's extra charge lines.
func (o *Order) ExtraLines() []*ExtraLine {
	return o.extraLines
}

// Events returns the domain events recorded since the aggregate was
// loaded or created.
func (o *Order) Events() []Event {
	return o.events
}

// ClearEvents drops the recorded events after they were published.
func (o *Order) ClearEvents() {
	o.events = nil
}

// IsOverdue reports whether the order is open, has a due date, and the
// due date lies strictly before today. Overdue is derived, never stored.
func (o *Order) IsOverdue(today time.Time) bool {
	return o.status.IsOpen() && o.dueDate != nil && dateOnly(*o.dueDate).Before(dateOnly(today))
}

// LineByID finds a line item by its identifier.
func (o *Order) LineByID(id kernel.UUID) (*LineItem, error) {
	for _, l := range o.lines {
		if l.ID().IsEqual(id) {
			return l, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("line item", id.String())
}

// AllocationByID finds a stock allocation across all line items,
// returning the owning line alongside it.
func (o *Order) AllocationByID(id kernel.UUID) (*LineItem, *Allocation, error) {
	for _, l := range o.lines {
		if a := l.allocationByID(id); a != nil {
			return l, a, nil
		}
	}
	return nil, nil, errs.NewObjectNotFoundError("allocation", id.String())
}

// AddLineItem appends a new line item to the order. The order must not
// be locked, the quantity must be positive, and the part must not
// repeat an existing line.
func (o *Order) AddLineItem(
	id kernel.UUID,
	partID kernel.UUID,
	quantity kernel.Quantity,
	loanPrice *decimal.Decimal,
	opts Options,
) (*LineItem, error) {
	if err := o.checkLocked(opts); err != nil {
		return nil, err
	}

	for _, l := range o.lines {
		if l.PartID().IsEqual(partID) {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"part",
				fmt.Errorf("part %s already has a line on order %s", partID, o.reference),
			)
		}
	}

	line, err := NewLineItem(id, partID, quantity, loanPrice)
	if err != nil {
		return nil, err
	}

	o.lines = append(o.lines, line)
	return line, nil
}

// RemoveLineItem deletes a line item that has not shipped anything yet.
func (o *Order) RemoveLineItem(lineID kernel.UUID, opts Options) error {
	if err := o.checkLocked(opts); err != nil {
		return err
	}

	line, err := o.LineByID(lineID)
	if err != nil {
		return err
	}
	if line.Shipped().IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"line item",
			fmt.Errorf("line %s has shipped quantity and cannot be removed", lineID),
		)
	}

	for i, l := range o.lines {
		if l.ID().IsEqual(lineID) {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			break
		}
	}
	return nil
}

// AddExtraLine appends an extra charge line to the order.
func (o *Order) AddExtraLine(line *ExtraLine, opts Options) error {
	if err := o.checkLocked(opts); err != nil {
		return err
	}
	if err := line.Validate(); err != nil {
		return err
	}

	o.extraLines = append(o.extraLines, line)
	return nil
}

// RemoveExtraLine deletes an extra charge line.
func (o *Order) RemoveExtraLine(lineID kernel.UUID, opts Options) error {
	if err := o.checkLocked(opts); err != nil {
		return err
	}

	for i, l := range o.extraLines {
		if l.ID().IsEqual(lineID) {
			o.extraLines = append(o.extraLines[:i], o.extraLines[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("extra line", lineID.String())
}

// SetDueDate updates the due date. The new date must not precede the
// order's creation date.
func (o *Order) SetDueDate(dueDate *time.Time, opts Options) error {
	if err := o.checkLocked(opts); err != nil {
		return err
	}
	return o.setDueDate(dueDate)
}

// SetDescription updates the order description.
func (o *Order) SetDescription(description string, opts Options) error {
	if err := o.checkLocked(opts); err != nil {
		return err
	}
	o.description = description
	return nil
}

// RecalculateTotalPrice recomputes the loan-side total from the line
// loan fees and the extra charge lines.
func (o *Order) RecalculateTotalPrice() {
	total := decimal.Zero
	for _, l := range o.lines {
		if p := l.LoanPrice(); p != nil {
			total = total.Add(p.Mul(l.Quantity().Decimal()))
		}
	}
	for _, e := range o.extraLines {
		total = total.Add(e.TotalPrice())
	}
	o.totalPrice = total
}

// Approve moves the order from Pending to Approved. The order must
// have at least one line item.
func (o *Order) Approve() error {
	if len(o.lines) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}

	if err := o.transitionTo(Approved); err != nil {
		return err
	}

	o.recordEvent(EventOrderApproved, nil, nil)
	return nil
}

// Issue hands the order to the borrower so line items may ship.
// Issuing resolves to Shipped instead when some line has already
// shipped, which happens when an order is resumed from hold.
func (o *Order) Issue(today time.Time) error {
	if len(o.lines) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}

	target := Issued
	if o.hasShippedQuantity() {
		target = Shipped
	}

	if err := o.transitionTo(target); err != nil {
		return err
	}

	if o.issueDate == nil {
		issued := dateOnly(today)
		o.issueDate = &issued
	}

	o.recordEvent(EventOrderIssued, nil, nil)
	return nil
}

// Hold suspends the order.
func (o *Order) Hold() error {
	if err := o.transitionTo(OnHold); err != nil {
		return err
	}

	o.recordEvent(EventOrderOnHold, nil, nil)
	return nil
}

// Resume takes the order off hold, deriving the target status from
// what has already happened: Shipped if anything left the warehouse,
// Issued if the order was issued, Pending otherwise.
func (o *Order) Resume() error {
	target := Pending
	switch {
	case o.hasShippedQuantity():
		target = Shipped
	case o.issueDate != nil:
		target = Issued
	}

	if err := o.transitionTo(target); err != nil {
		return err
	}

	o.recordEvent(EventOrderIssued, nil, nil)
	return nil
}

// Cancel abandons the order. Allowed only before anything shipped:
// Pending, Approved or OnHold per the transition table, and never when
// stock is out with the borrower.
func (o *Order) Cancel() error {
	if o.hasShippedQuantity() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order %s has shipped items and cannot be cancelled", o.reference),
		)
	}

	if err := o.transitionTo(Cancelled); err != nil {
		return err
	}

	o.recordEvent(EventOrderCancelled, nil, nil)
	return nil
}

// MarkReturned completes the order as returned. Every open line with
// shipped quantity is settled: its outstanding allocations close and
// its returned column catches up with shipped, covering items the
// borrower brings back in one go without itemized returns.
func (o *Order) MarkReturned(today time.Time) error {
	if !o.hasShippedQuantity() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order %s has no shipped items to return", o.reference),
		)
	}

	if err := o.transitionTo(Returned); err != nil {
		return err
	}

	for _, l := range o.lines {
		if l.Status().IsComplete() || l.Status().IsProblem() {
			continue
		}
		if l.Shipped().IsPositive() {
			l.forceReturn()
		}
	}

	returned := dateOnly(today)
	o.returnDate = &returned
	o.recordEvent(EventOrderReturned, nil, nil)
	return nil
}

// ConvertToSale closes the whole order as sold. Line ledgers are left
// untouched; line-level conversions are recorded separately through
// PlanLineConversion and ApplyLineConversion.
func (o *Order) ConvertToSale() error {
	if !o.hasShippedQuantity() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order %s has no shipped items to convert", o.reference),
		)
	}

	if err := o.transitionTo(ConvertedToSale); err != nil {
		return err
	}

	o.recordEvent(EventOrderConverted, nil, nil)
	return nil
}

// WriteOff closes the order as a loss.
func (o *Order) WriteOff() error {
	if !o.hasShippedQuantity() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order %s has no shipped items to write off", o.reference),
		)
	}

	if err := o.transitionTo(WrittenOff); err != nil {
		return err
	}

	o.recordEvent(EventOrderWrittenOff, nil, nil)
	return nil
}

// ShipLineItems ships a batch of quantities from concrete stock items.
//
// The whole batch is validated before anything mutates: each quantity
// must be positive, must not exceed the line's remaining unshipped
// quantity, and the batch as a whole must not claim more of any stock
// item than availability reports as unallocated. A failed validation
// leaves the order untouched.
//
// Shipping against a Pending or Approved order issues it first. Once
// at least one line has shipped in full the Issued order moves to
// Shipped and the ship date is set; partial shipments alone keep the
// order Issued.
//
// Returns the allocations the batch created or increased so the caller
// can mirror the movement on the stock side.
func (o *Order) ShipLineItems(items []ShipmentItem, availability StockAvailability, today time.Time) ([]*Allocation, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("shipment items")
	}

	switch o.status {
	case Pending, Approved, Issued, Shipped, PartialReturn:
		// shippable; pending and approved orders issue below, after
		// the batch has validated
	default:
		return nil, errs.NewInvalidTransitionError(o.status.String(), Shipped.String())
	}

	// Validate the whole batch first, accumulating per-line and
	// per-stock-item so two entries cannot jointly overdraw either.
	claimed := make(map[kernel.UUID]kernel.Quantity, len(items))
	available := make(map[kernel.UUID]kernel.Quantity, len(items))
	shipping := make(map[kernel.UUID]kernel.Quantity, len(items))
	for _, item := range items {
		line, err := o.LineByID(item.LineID)
		if err != nil {
			return nil, err
		}
		if !item.Quantity.IsPositive() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("shipment quantity for line %s must be greater than zero", item.LineID),
			)
		}

		total := shipping[item.LineID].Add(item.Quantity)
		if total.GreaterThan(line.RemainingToShip()) {
			return nil, errs.NewValueIsOutOfRangeError("quantity", total.String(), "0", line.RemainingToShip().String())
		}
		shipping[item.LineID] = total

		if _, ok := available[item.StockItemID]; !ok {
			avail, availErr := availability(item.StockItemID)
			if availErr != nil {
				return nil, availErr
			}
			available[item.StockItemID] = avail
			claimed[item.StockItemID] = kernel.ZeroQuantity()
		}

		free, err := available[item.StockItemID].Sub(claimed[item.StockItemID])
		if err != nil || item.Quantity.GreaterThan(free) {
			return nil, errs.NewOverAllocationError(item.StockItemID.String(), item.Quantity.String(), free.String())
		}
		claimed[item.StockItemID] = claimed[item.StockItemID].Add(item.Quantity)
	}

	if o.status == Pending || o.status == Approved {
		if err := o.Issue(today); err != nil {
			return nil, err
		}
	}

	// Mutate.
	touched := make([]*Allocation, 0, len(items))
	lineIDs := make([]kernel.UUID, 0, len(items))
	allocationIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		line, _ := o.LineByID(item.LineID)

		allocation := line.allocationForStockItem(item.StockItemID)
		if allocation == nil {
			allocation, _ = newAllocation(kernel.NewUUID(), item.StockItemID, item.Quantity, dateOnly(today))
			line.allocations = append(line.allocations, allocation)
		} else {
			allocation.increase(item.Quantity)
		}

		line.ship(item.Quantity)
		touched = append(touched, allocation)
		lineIDs = append(lineIDs, line.ID())
		allocationIDs = append(allocationIDs, allocation.ID())
	}

	if o.status == Issued && o.hasFullyShippedLine() {
		o.status = Shipped
		if o.shipDate == nil {
			shippedAt := dateOnly(today)
			o.shipDate = &shippedAt
		}
		o.recordEvent(EventOrderShipped, nil, nil)
	}

	o.recordEvent(EventItemsShipped, lineIDs, allocationIDs)
	return touched, nil
}

// ReturnLineItems takes a batch of quantities back against their
// allocations.
//
// The whole batch is validated first: each quantity must be positive
// and the batch must not return more against any allocation than is
// outstanding on it. A failed validation leaves the order untouched.
//
// After the batch applies, the order status is derived from the lines:
// every line settled moves the order to Returned when the tenant
// options auto-complete, and a mix of settled and open lines moves an
// Issued or Shipped order to PartialReturn.
//
// Returns the allocations the batch decremented so the caller can
// mirror the movement on the stock side.
func (o *Order) ReturnLineItems(items []ReturnItem, opts Options, today time.Time) ([]*Allocation, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("return items")
	}

	if !o.status.IsOpen() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot return items for order %s in status %s", o.reference, o.status),
		)
	}

	// Validate the whole batch first, accumulating per-allocation
	// requests so two entries cannot jointly overdraw one allocation.
	requested := make(map[kernel.UUID]kernel.Quantity, len(items))
	for _, item := range items {
		_, allocation, err := o.AllocationByID(item.AllocationID)
		if err != nil {
			return nil, err
		}
		if !item.Quantity.IsPositive() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"quantity",
				fmt.Errorf("return quantity for allocation %s must be greater than zero", item.AllocationID),
			)
		}

		total := requested[item.AllocationID].Add(item.Quantity)
		if total.GreaterThan(allocation.Quantity()) {
			return nil, errs.NewValueIsOutOfRangeError("quantity", total.String(), "0", allocation.Quantity().String())
		}
		requested[item.AllocationID] = total
	}

	// Mutate.
	touched := make([]*Allocation, 0, len(items))
	lineIDs := make([]kernel.UUID, 0, len(items))
	allocationIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		line, allocation, _ := o.AllocationByID(item.AllocationID)
		if err := allocation.returnQuantity(item.Quantity); err != nil {
			return nil, err
		}
		line.returnQuantity(item.Quantity)

		touched = append(touched, allocation)
		lineIDs = append(lineIDs, line.ID())
		allocationIDs = append(allocationIDs, allocation.ID())
	}

	o.recordEvent(EventItemsReturned, lineIDs, allocationIDs)
	o.deriveStatusAfterReturn(opts, today)
	return touched, nil
}

// PlanLineConversion computes how a sale of the given quantity from a
// line would draw on its loan allocations, oldest first, without
// mutating anything. The quantity must not exceed what is out on loan
// and not yet converted on that line.
//
// The caller creates the sales-side records from the returned
// transfers, then finalizes with ApplyLineConversion.
func (o *Order) PlanLineConversion(lineID kernel.UUID, quantity kernel.Quantity) ([]ConversionTransfer, error) {
	line, err := o.validateLineConversion(lineID, quantity)
	if err != nil {
		return nil, err
	}

	transfers := make([]ConversionTransfer, 0, len(line.allocations))
	remaining := quantity
	for _, a := range line.allocations {
		if a.IsConverted() || !a.Quantity().IsPositive() {
			continue
		}

		take := a.Quantity().Min(remaining)
		transfers = append(transfers, ConversionTransfer{
			AllocationID: a.ID(),
			StockItemID:  a.StockItemID(),
			Quantity:     take,
		})

		remaining, err = remaining.Sub(take)
		if err != nil {
			return nil, err
		}
		if remaining.IsZero() {
			break
		}
	}

	if remaining.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("line %s has insufficient outstanding allocations to convert %s", lineID, quantity),
		)
	}

	return transfers, nil
}

// ApplyLineConversion finalizes a planned conversion: the consumed loan
// allocations are flagged converted and linked to their sales-side
// counterparts, a ledger entry is appended, and the line status is
// refreshed. Allocation quantities are deliberately not decremented;
// the stock stays with the borrower, now as a sale.
func (o *Order) ApplyLineConversion(
	lineID kernel.UUID,
	quantity kernel.Quantity,
	price decimal.Decimal,
	salesOrderLineID kernel.UUID,
	applied []AppliedTransfer,
	at time.Time,
) (*Conversion, error) {
	line, err := o.validateLineConversion(lineID, quantity)
	if err != nil {
		return nil, err
	}

	conversion, err := newConversion(kernel.NewUUID(), quantity, false, price, salesOrderLineID, at)
	if err != nil {
		return nil, err
	}

	for _, t := range applied {
		allocation := line.allocationByID(t.AllocationID)
		if allocation == nil {
			return nil, errs.NewObjectNotFoundError("allocation", t.AllocationID.String())
		}
		allocation.markConverted(t.SalesAllocationID)
	}

	line.recordConversion(conversion)
	o.recordEvent(EventItemsConverted, []kernel.UUID{line.ID()}, nil)
	return conversion, nil
}

// ValidateLineConversion checks that a sale of the given quantity from
// the line is possible without mutating anything. Batch handlers call
// it for every entry before converting any of them.
func (o *Order) ValidateLineConversion(lineID kernel.UUID, quantity kernel.Quantity) error {
	_, err := o.validateLineConversion(lineID, quantity)
	return err
}

// SellReturnedItems sells quantity that has already come back to stock.
// The loan-side ledger of the line is untouched beyond the sold
// counter; no allocations are consumed because the stock is back on
// the shelf.
func (o *Order) SellReturnedItems(
	lineID kernel.UUID,
	quantity kernel.Quantity,
	price decimal.Decimal,
	salesOrderLineID kernel.UUID,
	at time.Time,
) (*Conversion, error) {
	line, err := o.validateReturnedSale(lineID, quantity)
	if err != nil {
		return nil, err
	}

	conversion, err := newConversion(kernel.NewUUID(), quantity, true, price, salesOrderLineID, at)
	if err != nil {
		return nil, err
	}

	line.recordReturnedSale(conversion)
	o.recordEvent(EventItemsConverted, []kernel.UUID{line.ID()}, nil)
	return conversion, nil
}

// ValidateReturnedSale checks that a sale of already-returned quantity
// is possible without mutating anything.
func (o *Order) ValidateReturnedSale(lineID kernel.UUID, quantity kernel.Quantity) error {
	_, err := o.validateReturnedSale(lineID, quantity)
	return err
}

// validateLineConversion shares the checks between planning, applying
// and batch pre-validation of out-on-loan conversions.
func (o *Order) validateLineConversion(lineID kernel.UUID, quantity kernel.Quantity) (*LineItem, error) {
	switch o.status {
	case Issued, Shipped, PartialReturn:
		// convertible
	default:
		return nil, errs.NewInvalidTransitionError(o.status.String(), ConvertedToSale.String())
	}

	line, err := o.LineByID(lineID)
	if err != nil {
		return nil, err
	}
	if !quantity.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("conversion quantity for line %s must be greater than zero", lineID),
		)
	}

	remaining := line.RemainingOnLoan()
	if quantity.GreaterThan(remaining) {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity.String(), "0", remaining.String())
	}

	return line, nil
}

func (o *Order) validateReturnedSale(lineID kernel.UUID, quantity kernel.Quantity) (*LineItem, error) {
	line, err := o.LineByID(lineID)
	if err != nil {
		return nil, err
	}
	if !quantity.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("sale quantity for line %s must be greater than zero", lineID),
		)
	}

	available := line.AvailableReturnedToSell()
	if quantity.GreaterThan(available) {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity.String(), "0", available.String())
	}

	return line, nil
}

// deriveStatusAfterReturn moves the order according to its line
// statuses after a return batch. Lines that never shipped in full keep
// the order open.
func (o *Order) deriveStatusAfterReturn(opts Options, today time.Time) {
	pending := o.pendingLineCount()
	completed := o.completedLineCount()

	if pending == 0 && o.status.IsOpen() {
		if opts.AutoCompleteOnFullReturn {
			// Every line is closed so MarkReturned's cascade is a no-op;
			// it still sets the return date and records the event. A held
			// order stays held, its transition to Returned is not allowed.
			_ = o.MarkReturned(today)
		}
		return
	}

	if completed > 0 && pending > 0 && (o.status == Issued || o.status == Shipped) {
		o.status = PartialReturn
		o.recordEvent(EventOrderPartialReturn, nil, nil)
	}
}

// pendingLineCount counts lines that still hold the order open:
// neither in the complete nor in a problem state.
func (o *Order) pendingLineCount() int {
	count := 0
	for _, l := range o.lines {
		if l.Status().IsComplete() || l.Status().IsProblem() {
			continue
		}
		count++
	}
	return count
}

// completedLineCount counts lines in the complete group.
func (o *Order) completedLineCount() int {
	count := 0
	for _, l := range o.lines {
		if l.Status().IsComplete() {
			count++
		}
	}
	return count
}

// hasShippedQuantity reports whether any line has shipped anything.
func (o *Order) hasShippedQuantity() bool {
	for _, l := range o.lines {
		if l.Shipped().IsPositive() {
			return true
		}
	}
	return false
}

// hasFullyShippedLine reports whether any line has shipped its full
// requested quantity.
func (o *Order) hasFullyShippedLine() bool {
	for _, l := range o.lines {
		if l.Status() == LineShipped {
			return true
		}
	}
	return false
}

// CanApprove reports whether the order awaits approval.
func (o *Order) CanApprove() bool {
	return o.status == Pending
}

// CanIssue reports whether the order may be issued to the borrower.
func (o *Order) CanIssue() bool {
	return o.status == Pending || o.status == Approved || o.status == OnHold
}

// CanCancel reports whether the order may still be abandoned. Once
// issued the order closes through returns, conversion or write-off.
func (o *Order) CanCancel() bool {
	return o.status == Pending || o.status == OnHold
}

// CanHold reports whether the order may be suspended.
func (o *Order) CanHold() bool {
	return o.status == Pending || o.status == Issued || o.status == Shipped
}

// CanReturn reports whether items may come back on this order.
func (o *Order) CanReturn() bool {
	return o.hasActiveShippedItems()
}

// CanConvertToSale reports whether the order may close as a sale.
func (o *Order) CanConvertToSale() bool {
	return o.hasActiveShippedItems()
}

// CanWriteOff reports whether the order may close as a loss.
func (o *Order) CanWriteOff() bool {
	return o.hasActiveShippedItems()
}

// hasActiveShippedItems reports whether the order is in flight with
// shipped quantity on it. Returns, conversions and write-offs all
// share this gate.
func (o *Order) hasActiveShippedItems() bool {
	switch o.status {
	case Issued, Shipped, PartialReturn:
		return o.hasShippedQuantity()
	default:
		return false
	}
}

// checkLocked rejects edits to orders in a terminal group unless the
// tenant options allow them.
func (o *Order) checkLocked(opts Options) error {
	if opts.AllowEditCompletedOrders {
		return nil
	}
	if o.status.IsComplete() || o.status.IsFailed() {
		return errs.NewOrderIsLockedError(o.reference)
	}
	return nil
}

func (o *Order) transitionTo(target Status) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

func (o *Order) recordEvent(eventType EventType, lineIDs []kernel.UUID, allocationIDs []kernel.UUID) {
	o.events = append(o.events, Event{
		Type:          eventType,
		OrderID:       o.id,
		Reference:     o.reference,
		LineIDs:       lineIDs,
		AllocationIDs: allocationIDs,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setReference(reference string) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	o.reference = reference
	return nil
}

func (o *Order) setBorrowerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.borrowerID = id
	return nil
}

func (o *Order) setResponsibleID(id *kernel.UUID, opts Options) error {
	if id == nil {
		if opts.RequireResponsible {
			return errs.NewValueIsRequiredError("responsible")
		}
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.responsibleID = id
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setDueDate(dueDate *time.Time) error {
	if dueDate != nil && dateOnly(*dueDate).Before(dateOnly(o.creationDate)) {
		return errs.NewValueIsInvalidErrorWithCause(
			"due date",
			fmt.Errorf("due date %s precedes the creation date", dueDate.Format(time.DateOnly)),
		)
	}
	o.dueDate = dueDate
	return nil
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
