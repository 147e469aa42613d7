package salesservice

import (
	"context"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesOrderService implements the sales port on the shared
// database. Like the stock service it runs on the connection it was
// given, so conversion writes join the unit of work transaction.
type GormSalesOrderService struct {
	db *gorm.DB
}

// NewGormSalesOrderService creates a sales order service on the given
// connection.
func NewGormSalesOrderService(db *gorm.DB) *GormSalesOrderService {
	return &GormSalesOrderService{db: db}
}

// CreateOrder creates a sales order for the customer and returns its
// identifier.
func (s *GormSalesOrderService) CreateOrder(
	ctx context.Context,
	customerID kernel.UUID,
	reference string,
	description string,
) (kernel.UUID, error) {
	if reference == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("reference")
	}

	id := kernel.NewUUID()
	dto := SalesOrderDTO{
		ID:          id.Bytes(),
		CustomerID:  customerID.Bytes(),
		Reference:   reference,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}

// ReferenceExists reports whether a sales order with the given
// reference already exists.
func (s *GormSalesOrderService) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&SalesOrderDTO{}).
		Where("reference = ?", reference).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddLine appends a line to a sales order and returns the line
// identifier.
func (s *GormSalesOrderService) AddLine(
	ctx context.Context,
	orderID kernel.UUID,
	partID kernel.UUID,
	quantity kernel.Quantity,
	price decimal.Decimal,
) (kernel.UUID, error) {
	id := kernel.NewUUID()
	dto := SalesOrderLineDTO{
		ID:       id.Bytes(),
		OrderID:  orderID.Bytes(),
		PartID:   partID.Bytes(),
		Quantity: quantity.Decimal(),
		Price:    price,
	}
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}

// Allocate binds quantity of a stock item to a sales order line and
// returns the sales allocation identifier.
func (s *GormSalesOrderService) Allocate(
	ctx context.Context,
	lineID kernel.UUID,
	stockItemID kernel.UUID,
	quantity kernel.Quantity,
) (kernel.UUID, error) {
	id := kernel.NewUUID()
	dto := SalesAllocationDTO{
		ID:          id.Bytes(),
		LineID:      lineID.Bytes(),
		StockItemID: stockItemID.Bytes(),
		Quantity:    quantity.Decimal(),
	}
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return kernel.UUID{}, err
	}
	return id, nil
}
