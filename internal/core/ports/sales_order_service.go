package ports

import (
	"context"

	"loans/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// SalesOrderService is the contract towards the sales module. Loan
// conversions use it to materialize the sale side: a sales order for
// the borrower, one line per converted loan line, and one sales
// allocation per consumed loan allocation.
type SalesOrderService interface {
	// CreateOrder creates a sales order for the customer and returns
	// its identifier. The reference must be unique among sales orders.
	CreateOrder(ctx context.Context, customerID kernel.UUID, reference string, description string) (kernel.UUID, error)

	// ReferenceExists reports whether a sales order with the given
	// reference already exists.
	ReferenceExists(ctx context.Context, reference string) (bool, error)

	// AddLine appends a line to a sales order and returns the line
	// identifier.
	AddLine(ctx context.Context, orderID kernel.UUID, partID kernel.UUID, quantity kernel.Quantity, price decimal.Decimal) (kernel.UUID, error)

	// Allocate binds quantity of a stock item to a sales order line
	// and returns the sales allocation identifier.
	Allocate(ctx context.Context, lineID kernel.UUID, stockItemID kernel.UUID, quantity kernel.Quantity) (kernel.UUID, error)
}
