package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// LoanOrderRepository returns a LoanOrderRepository instance bound
	// to the current transaction. Repository will use the transaction
	// started by Begin().
	LoanOrderRepository() LoanOrderRepository

	// StockService returns a StockService bound to the current
	// transaction, so availability reads and stock writes share the
	// isolation of the loan order writes.
	StockService() StockService

	// SalesOrderService returns a SalesOrderService bound to the
	// current transaction, so sales-side records commit and roll back
	// together with the loan order.
	SalesOrderService() SalesOrderService
}
