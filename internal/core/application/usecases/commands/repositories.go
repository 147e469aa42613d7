// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// persistence, and post-commit event publishing.
package commands

import (
	"context"

	"loans/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LoanOrderRepoFactory provides access to the loan order repository
	// within a transaction.
	LoanOrderRepoFactory interface {
		LoanOrderRepository() ports.LoanOrderRepository
	}

	// StockServiceFactory provides access to the stock module within
	// the same transaction as the loan order writes.
	StockServiceFactory interface {
		StockService() ports.StockService
	}

	// SalesServiceFactory provides access to the sales module within
	// the same transaction as the loan order writes.
	SalesServiceFactory interface {
		SalesOrderService() ports.SalesOrderService
	}

	// LoanOrderUoW manages transactions for loan order operations.
	LoanOrderUoW interface {
		TxManager
		LoanOrderRepoFactory
		StockServiceFactory
		SalesServiceFactory
	}

	// LoanOrderUoWFactory creates new loan order unit of work instances.
	LoanOrderUoWFactory interface {
		Create() LoanOrderUoW
	}
)
