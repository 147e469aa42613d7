package commands

import (
	"errors"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var ErrIssueOrderCommandIsNotConstructed = errors.New(
	"IssueOrderCommand must be created via NewIssueOrderCommand constructor",
)

// IssueOrderCommand issues a loan order to the borrower.
type IssueOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueOrderCommand creates the command for the given order.
func NewIssueOrderCommand(orderID kernel.UUID) (IssueOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return IssueOrderCommand{}, err
	}

	return IssueOrderCommand{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueOrderCommand) Validate() error {
	return c.guard.Validate(ErrIssueOrderCommandIsNotConstructed)
}

// OrderID returns the order the command targets.
func (c IssueOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
