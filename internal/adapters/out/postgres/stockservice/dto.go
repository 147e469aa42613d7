// Package stockservice provides a GORM-backed implementation of the
// stock port. It keeps the on-hand quantity per stock item and an
// append-only movement ledger; a loan shipment peels quantity off the
// item in the same transaction that records the movement.
package stockservice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItemDTO represents one physical batch of a part with its
// on-hand quantity and condition flag.
type StockItemDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PartID     uuid.UUID  `gorm:"type:uuid;index"`
	LocationID *uuid.UUID `gorm:"type:uuid"`
	Quantity   decimal.Decimal `gorm:"type:numeric"`
	Status     string
}

// TableName specifies the database table name for stock items.
func (StockItemDTO) TableName() string {
	return "stock_items"
}

// StockMovementDTO is one entry of the stock ledger.
type StockMovementDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	StockItemID uuid.UUID `gorm:"type:uuid;index"`
	Movement    string
	Quantity    decimal.Decimal `gorm:"type:numeric"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for stock movements.
func (StockMovementDTO) TableName() string {
	return "stock_movements"
}
