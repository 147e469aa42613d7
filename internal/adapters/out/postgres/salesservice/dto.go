// Package salesservice provides a GORM-backed implementation of the
// sales port. Loan conversions use it to materialize the sale side of
// a conversion: the sales order, its lines and the stock allocations
// that point back at the loaned items.
package salesservice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderDTO represents a sales order created for a borrower.
type SalesOrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index"`
	Reference   string    `gorm:"uniqueIndex"`
	Description string
	CreatedAt   time.Time
}

// TableName specifies the database table name for sales orders.
func (SalesOrderDTO) TableName() string {
	return "sales_orders"
}

// SalesOrderLineDTO represents one part position of a sales order.
type SalesOrderLineDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`
	PartID   uuid.UUID `gorm:"type:uuid;index"`
	Quantity decimal.Decimal `gorm:"type:numeric"`
	Price    decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for sales order lines.
func (SalesOrderLineDTO) TableName() string {
	return "sales_order_lines"
}

// SalesAllocationDTO binds quantity of a stock item to a sales order
// line.
type SalesAllocationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineID      uuid.UUID `gorm:"type:uuid;index"`
	StockItemID uuid.UUID `gorm:"type:uuid;index"`
	Quantity    decimal.Decimal `gorm:"type:numeric"`
}

// TableName specifies the database table name for sales allocations.
func (SalesAllocationDTO) TableName() string {
	return "sales_order_allocations"
}
