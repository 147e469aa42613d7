package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var ErrResumeOrderCommandIsNotConstructed = errors.New(
	"ResumeOrderCommand must be created via NewResumeOrderCommand constructor",
)

// ResumeOrderCommand takes a loan order off hold.
type ResumeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeOrderCommand creates the command for the given order.
func NewResumeOrderCommand(orderID kernel.UUID) (ResumeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ResumeOrderCommand{}, err
	}

	return ResumeOrderCommand{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeOrderCommand) Validate() error {
	return c.guard.Validate(ErrResumeOrderCommandIsNotConstructed)
}

// OrderID returns the order the command targets.
func (c ResumeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
