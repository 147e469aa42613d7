package loanorder

import "loans/internal/core/domain/model/kernel"

// EventType identifies a lifecycle event recorded by the Order aggregate.
type EventType int

const (
	EventTypeUnknown EventType = iota

	// EventOrderCreated is recorded when a new order is constructed.
	EventOrderCreated

	// EventOrderApproved is recorded on the Pending -> Approved transition.
	EventOrderApproved

	// EventOrderIssued is recorded when the order is issued to the borrower.
	EventOrderIssued

	// EventOrderShipped is recorded when the first line item leaves the warehouse.
	EventOrderShipped

	// EventOrderOnHold is recorded when the order is suspended.
	EventOrderOnHold

	// EventOrderPartialReturn is recorded when some lines close while others stay open.
	EventOrderPartialReturn

	// EventOrderReturned is recorded when the order completes as returned.
	EventOrderReturned

	// EventOrderConverted is recorded when the order closes as a sale.
	EventOrderConverted

	// EventOrderCancelled is recorded when the order is cancelled.
	EventOrderCancelled

	// EventOrderWrittenOff is recorded when the order closes as a loss.
	EventOrderWrittenOff

	// EventItemsShipped is recorded for each successful shipment batch.
	EventItemsShipped

	// EventItemsReturned is recorded for each successful return batch.
	EventItemsReturned

	// EventItemsConverted is recorded for each line conversion or
	// returned-item sale.
	EventItemsConverted

	// EventOrderOverdue is published by the scheduled sweep for open
	// orders past their due date. It never originates on the aggregate.
	EventOrderOverdue

	// EventOrderDueSoon is published by the scheduled sweep for open
	// orders inside the reminder window.
	EventOrderDueSoon
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		EventTypeUnknown:        "Unknown",
		EventOrderCreated:       "OrderCreated",
		EventOrderApproved:      "OrderApproved",
		EventOrderIssued:        "OrderIssued",
		EventOrderShipped:       "OrderShipped",
		EventOrderOnHold:        "OrderOnHold",
		EventOrderPartialReturn: "OrderPartialReturn",
		EventOrderReturned:      "OrderReturned",
		EventOrderConverted:     "OrderConverted",
		EventOrderCancelled:     "OrderCancelled",
		EventOrderWrittenOff:    "OrderWrittenOff",
		EventItemsShipped:       "ItemsShipped",
		EventItemsReturned:      "ItemsReturned",
		EventItemsConverted:     "ItemsConverted",
		EventOrderOverdue:       "OrderOverdue",
		EventOrderDueSoon:       "OrderDueSoon",
	}
}

// String returns the human-readable name of the event type.
func (t EventType) String() string {
	if str, ok := getEventTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// Event is a domain event recorded by the Order aggregate while handling
// a command. Events are collected on the aggregate and published by the
// application layer after the surrounding transaction commits.
type Event struct {
	// Type identifies what happened.
	Type EventType

	// OrderID is the aggregate the event belongs to.
	OrderID kernel.UUID

	// Reference is the order reference at the time of the event,
	// carried so subscribers can log without loading the order.
	Reference string

	// LineIDs lists the line items touched by the event, if any.
	LineIDs []kernel.UUID

	// AllocationIDs lists the stock allocations touched by the event, if any.
	AllocationIDs []kernel.UUID
}
