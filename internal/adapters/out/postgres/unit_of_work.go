// Package postgres provides the GORM-based implementation of the Unit
// of Work pattern. A unit of work spans one business transaction: it
// hands out repositories bound to the transaction, coordinates commit
// and rollback, and tracks the aggregates touched along the way so
// domain events can be processed after a successful commit.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.LoanOrderRepository().Update(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns a single transaction; concurrent
// goroutines must use separate instances.
package postgres

import (
	"context"

	"loans/internal/adapters/out/postgres/loanorderrepo"
	"loans/internal/adapters/out/postgres/salesservice"
	"loans/internal/adapters/out/postgres/stockservice"
	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM
// database connections. Each business operation gets a fresh unit of
// work with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of
// work instances. The provided database connection is shared by all
// created instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks
// aggregate changes for one business operation.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Repeated calls on the same instance are safe and will not create
// nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit the transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is active,
// which makes it safe to call from a defer after a commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// LoanOrderRepository provides access to loan order persistence within
// the unit of work. Operations execute inside the current transaction
// if one is active, otherwise on the main connection.
func (uow *GormUnitOfWork) LoanOrderRepository() ports.LoanOrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return loanorderrepo.NewGormLoanOrderRepository(db, uow)
}

// StockService provides access to the stock module within the unit of
// work. Availability reads and stock ledger writes execute inside the
// current transaction if one is active.
func (uow *GormUnitOfWork) StockService() ports.StockService {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return stockservice.NewGormStockService(db)
}

// SalesOrderService provides access to the sales module within the
// unit of work, so conversion writes commit and roll back together
// with the loan order.
func (uow *GormUnitOfWork) SalesOrderService() ports.SalesOrderService {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return salesservice.NewGormSalesOrderService(db)
}

// TrackAggregate registers a domain aggregate as modified within this
// unit of work. Repository implementations call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
