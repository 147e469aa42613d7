package ports

import (
	"context"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
)

// LoanOrderRepository defines the persistence contract for loan order
// aggregates. Implementations load and store the full aggregate: the
// order, its line items, their allocations and conversion ledgers, and
// the extra charge lines.
type LoanOrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *loanorder.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *loanorder.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*loanorder.Order, error)

	// GetByReference retrieves an order aggregate by its unique
	// human-readable reference.
	GetByReference(ctx context.Context, reference string) (*loanorder.Order, error)
}
