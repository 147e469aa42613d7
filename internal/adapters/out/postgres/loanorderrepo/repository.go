package loanorderrepo

import (
	"context"
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLoanOrderRepository implements LoanOrderRepository using GORM.
type GormLoanOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLoanOrderRepository creates a new GORM loan order repository.
func NewGormLoanOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormLoanOrderRepository {
	return &GormLoanOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new loan order with all its children to the database.
func (r *GormLoanOrderRepository) Add(ctx context.Context, aggregate *loanorder.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update replaces the stored state of an existing loan order. Child
// rows are rewritten from the aggregate, so removed lines, allocations
// and extra lines disappear from the database as well.
func (r *GormLoanOrderRepository) Update(ctx context.Context, aggregate *loanorder.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("Lines", "ExtraLines").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.deleteChildren(db, dto.ID); err != nil {
		return err
	}
	for i := range dto.Lines {
		if err := db.Create(&dto.Lines[i]).Error; err != nil {
			return err
		}
	}
	for i := range dto.ExtraLines {
		if err := db.Create(&dto.ExtraLines[i]).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a loan order by ID with all its children.
func (r *GormLoanOrderRepository) Get(ctx context.Context, id kernel.UUID) (*loanorder.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.getOne(ctx, "id = ?", id.Bytes(), id.String())
}

// GetByReference retrieves a loan order by its unique reference.
func (r *GormLoanOrderRepository) GetByReference(ctx context.Context, reference string) (*loanorder.Order, error) {
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("reference")
	}
	return r.getOne(ctx, "reference = ?", reference, reference)
}

func (r *GormLoanOrderRepository) getOne(
	ctx context.Context,
	condition string,
	value any,
	identity string,
) (*loanorder.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", byID).
		Preload("Lines.Allocations", byCreationOrder).
		Preload("Lines.Conversions", byConversionOrder).
		Preload("ExtraLines").
		First(&dto, condition, value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("loan order", identity)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormLoanOrderRepository) deleteChildren(db *gorm.DB, orderID any) error {
	lineIDs := db.Model(&LineItemDTO{}).Select("id").Where("order_id = ?", orderID)
	if err := db.Where("line_id IN (?)", lineIDs).Delete(&AllocationDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("line_id IN (?)", lineIDs).Delete(&ConversionDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", orderID).Delete(&LineItemDTO{}).Error; err != nil {
		return err
	}
	return db.Where("order_id = ?", orderID).Delete(&ExtraLineDTO{}).Error
}

// Allocations are consumed oldest first during conversion, so load
// order must be stable across process restarts.
func byCreationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}

func byConversionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("converted_at, id")
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
