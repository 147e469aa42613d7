package commands

import (
	"errors"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrReferenceIsRequired = errors.New("reference is required")
)

// CreateOrderCommand represents a request to open a new loan order for
// a borrower. The order starts in Pending status with no line items.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "LO-0042", borrowerID, nil, "trial pumps", &dueDate)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	reference     string
	borrowerID    kernel.UUID
	responsibleID *kernel.UUID
	description   string
	dueDate       *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new loan order.
// Validates that the order and borrower IDs are valid and the
// reference is not empty. Responsible and due date stay optional here;
// tenant-level requirements are enforced by the domain.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	reference string,
	borrowerID kernel.UUID,
	responsibleID *kernel.UUID,
	description string,
	dueDate *time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard:         guard.NewConstructorGuard(),
		responsibleID: responsibleID,
		description:   description,
		dueDate:       dueDate,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReference(reference),
		cmd.setBorrowerID(borrowerID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reference returns the human-readable order reference.
func (c CreateOrderCommand) Reference() string {
	return c.reference
}

// BorrowerID returns the customer borrowing the items.
func (c CreateOrderCommand) BorrowerID() kernel.UUID {
	return c.borrowerID
}

// ResponsibleID returns the optional responsible owner.
func (c CreateOrderCommand) ResponsibleID() *kernel.UUID {
	return c.responsibleID
}

// Description returns the order description.
func (c CreateOrderCommand) Description() string {
	return c.description
}

// DueDate returns the optional due date of the loan.
func (c CreateOrderCommand) DueDate() *time.Time {
	return c.dueDate
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setReference(reference string) error {
	if reference == "" {
		return ErrReferenceIsRequired
	}

	c.reference = reference
	return nil
}

func (c *CreateOrderCommand) setBorrowerID(borrowerID kernel.UUID) error {
	if err := borrowerID.Validate(); err != nil {
		return err
	}

	c.borrowerID = borrowerID
	return nil
}
