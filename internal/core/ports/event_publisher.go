package ports

import (
	"context"

	"loans/internal/core/domain/model/loanorder"
)

// EventPublisher delivers domain events to their subscribers after the
// transaction that produced them has committed. Implementations must
// not fail the caller: delivery problems are logged, not propagated.
type EventPublisher interface {
	Publish(ctx context.Context, events []loanorder.Event)
}
