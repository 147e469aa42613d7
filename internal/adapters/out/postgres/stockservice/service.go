package stockservice

import (
	"context"
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/ports"
	"loans/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockService implements the stock port on the shared database.
// It intentionally runs on the connection it was given: when that is
// the unit of work transaction, availability checks and quantity
// writes happen under the same isolation as the loan allocation rows.
type GormStockService struct {
	db *gorm.DB
}

// NewGormStockService creates a stock service on the given connection.
func NewGormStockService(db *gorm.DB) *GormStockService {
	return &GormStockService{db: db}
}

// UnallocatedQuantity reports how much of a stock item is still on
// hand. Loan shipments decrement the on-hand quantity through
// RecordMovement, so on hand is what no loan claims yet.
func (s *GormStockService) UnallocatedQuantity(ctx context.Context, stockItemID kernel.UUID) (kernel.Quantity, error) {
	item, err := s.getItem(ctx, stockItemID)
	if err != nil {
		return kernel.ZeroQuantity(), err
	}
	return kernel.NewQuantity(item.Quantity)
}

// ItemsForPart lists the stock items holding the given part with a
// positive quantity, largest first.
func (s *GormStockService) ItemsForPart(ctx context.Context, partID kernel.UUID) ([]ports.StockItem, error) {
	var dtos []StockItemDTO
	err := s.db.WithContext(ctx).
		Where("part_id = ? AND quantity > 0", partID.Bytes()).
		Order("quantity DESC, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]ports.StockItem, 0, len(dtos))
	for _, dto := range dtos {
		item, itemErr := toPortItem(dto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}
	return items, nil
}

// RecordMovement appends a ledger entry and adjusts the on-hand
// quantity: loans out decrement, returns increment.
func (s *GormStockService) RecordMovement(
	ctx context.Context,
	stockItemID kernel.UUID,
	movement ports.StockMovement,
	quantity kernel.Quantity,
	orderID kernel.UUID,
) error {
	item, err := s.getItem(ctx, stockItemID)
	if err != nil {
		return err
	}

	onHand := item.Quantity
	switch movement {
	case ports.MovementLoanedOut:
		onHand = onHand.Sub(quantity.Decimal())
		if onHand.IsNegative() {
			return errs.NewOverAllocationError(stockItemID.String(), quantity.String(), item.Quantity.String())
		}
	case ports.MovementReturnedFromLoan:
		onHand = onHand.Add(quantity.Decimal())
	default:
		return errs.NewValueIsInvalidError("movement")
	}

	db := s.db.WithContext(ctx)
	if err = db.Model(&StockItemDTO{}).
		Where("id = ?", item.ID).
		Update("quantity", onHand).Error; err != nil {
		return err
	}

	entry := StockMovementDTO{
		ID:          uuid.New(),
		StockItemID: stockItemID.Bytes(),
		Movement:    string(movement),
		Quantity:    quantity.Decimal(),
		OrderID:     orderID.Bytes(),
	}
	return db.Create(&entry).Error
}

// Relocate moves a stock item to another location.
func (s *GormStockService) Relocate(ctx context.Context, stockItemID kernel.UUID, locationID kernel.UUID) error {
	raw := locationID.Bytes()
	return s.updateItem(ctx, stockItemID, "location_id", &raw)
}

// SetStatus updates the condition flag of a stock item.
func (s *GormStockService) SetStatus(ctx context.Context, stockItemID kernel.UUID, status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("status")
	}
	return s.updateItem(ctx, stockItemID, "status", status)
}

func (s *GormStockService) getItem(ctx context.Context, stockItemID kernel.UUID) (StockItemDTO, error) {
	var dto StockItemDTO
	err := s.db.WithContext(ctx).First(&dto, "id = ?", stockItemID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StockItemDTO{}, errs.NewObjectNotFoundError("stock item", stockItemID.String())
		}
		return StockItemDTO{}, err
	}
	return dto, nil
}

func (s *GormStockService) updateItem(ctx context.Context, stockItemID kernel.UUID, column string, value any) error {
	result := s.db.WithContext(ctx).Model(&StockItemDTO{}).
		Where("id = ?", stockItemID.Bytes()).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stock item", stockItemID.String())
	}
	return nil
}

func toPortItem(dto StockItemDTO) (ports.StockItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.StockItem{}, err
	}
	partID, err := kernel.UUIDFromBytes(dto.PartID[:])
	if err != nil {
		return ports.StockItem{}, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return ports.StockItem{}, err
	}

	return ports.StockItem{ID: id, PartID: partID, Quantity: quantity}, nil
}
