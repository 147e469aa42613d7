package http

import "time"

// Error is the JSON error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewLoanOrder is the request body for creating a loan order.
type NewLoanOrder struct {
	Reference     string     `json:"reference"`
	BorrowerID    string     `json:"borrower_id"`
	ResponsibleID *string    `json:"responsible_id,omitempty"`
	Description   string     `json:"description,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// NewLineItem is the request body for adding a line to a loan order.
type NewLineItem struct {
	PartID    string  `json:"part_id"`
	Quantity  string  `json:"quantity"`
	LoanPrice *string `json:"loan_price,omitempty"`
}

// NewExtraLine is the request body for adding a free-form charge.
type NewExtraLine struct {
	Reference   string `json:"reference"`
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
	Notes       string `json:"notes,omitempty"`
}

// ShipmentRequest is the request body for shipping a batch of items.
type ShipmentRequest struct {
	Items []ShipmentRequestItem `json:"items"`
}

// ShipmentRequestItem is one entry of a shipment batch.
type ShipmentRequestItem struct {
	LineID      string `json:"line_id"`
	StockItemID string `json:"stock_item_id"`
	Quantity    string `json:"quantity"`
}

// ReturnRequest is the request body for returning a batch of items.
type ReturnRequest struct {
	Items []ReturnRequestItem `json:"items"`
}

// ReturnRequestItem is one entry of a return batch.
type ReturnRequestItem struct {
	AllocationID string  `json:"allocation_id"`
	Quantity     string  `json:"quantity"`
	StockStatus  string  `json:"stock_status,omitempty"`
	LocationID   *string `json:"location_id,omitempty"`
}

// ConversionRequest is the request body for selling loaned or returned
// quantities to the borrower.
type ConversionRequest struct {
	SalesOrderID *string                 `json:"sales_order_id,omitempty"`
	Items        []ConversionRequestItem `json:"items"`
}

// ConversionRequestItem is one entry of a conversion batch.
type ConversionRequestItem struct {
	LineID   string `json:"line_id"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
}

// LoanOrderSummary is one row of the list endpoints.
type LoanOrderSummary struct {
	ID         string     `json:"id"`
	Reference  string     `json:"reference"`
	BorrowerID string     `json:"borrower_id"`
	Status     string     `json:"status"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	TotalPrice string     `json:"total_price"`
}
