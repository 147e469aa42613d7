package loanorder

import (
	"errors"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"
	"loans/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Conversion is an immutable ledger entry recording that part of a line
// item was sold to the borrower. One entry is appended per conversion,
// whether the items were still out on loan or already returned.
type Conversion struct {
	id               kernel.UUID
	quantity         kernel.Quantity
	isReturnedItems  bool
	price            decimal.Decimal
	salesOrderLineID kernel.UUID
	convertedAt      time.Time

	guard guard.ConstructorGuard
}

// newConversion creates a ledger entry. Only the owning Order appends
// conversions, so this stays unexported.
func newConversion(
	id kernel.UUID,
	quantity kernel.Quantity,
	isReturnedItems bool,
	price decimal.Decimal,
	salesOrderLineID kernel.UUID,
	at time.Time,
) (*Conversion, error) {
	c := &Conversion{
		guard:           guard.NewConstructorGuard(),
		isReturnedItems: isReturnedItems,
		convertedAt:     at,
	}

	if err := errors.Join(
		c.setID(id),
		c.setQuantity(quantity),
		c.setPrice(price),
		c.setSalesOrderLineID(salesOrderLineID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreConversion reconstructs a ledger entry from persistence.
// Used by repository implementations only.
func RestoreConversion(
	id kernel.UUID,
	quantity kernel.Quantity,
	isReturnedItems bool,
	price decimal.Decimal,
	salesOrderLineID kernel.UUID,
	convertedAt time.Time,
) (*Conversion, error) {
	return newConversion(id, quantity, isReturnedItems, price, salesOrderLineID, convertedAt)
}

// Validate ensures the conversion was built via its constructors.
func (c *Conversion) Validate() error {
	if c == nil {
		return guard.ErrDefaultConstructorGuard
	}
	return c.guard.Validate(guard.ErrDefaultConstructorGuard)
}

// ID returns the conversion's unique identifier.
func (c *Conversion) ID() kernel.UUID {
	return c.id
}

// Quantity returns how much was sold in this conversion.
func (c *Conversion) Quantity() kernel.Quantity {
	return c.quantity
}

// IsReturnedItems reports whether the sold items had already been
// returned to stock, as opposed to being out on loan.
func (c *Conversion) IsReturnedItems() bool {
	return c.isReturnedItems
}

// Price returns the unit sale price agreed for the conversion.
func (c *Conversion) Price() decimal.Decimal {
	return c.price
}

// SalesOrderLineID returns the sales order line created for this sale.
func (c *Conversion) SalesOrderLineID() kernel.UUID {
	return c.salesOrderLineID
}

// ConvertedAt returns when the conversion was recorded.
func (c *Conversion) ConvertedAt() time.Time {
	return c.convertedAt
}

func (c *Conversion) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Conversion) setQuantity(quantity kernel.Quantity) error {
	if !quantity.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("quantity", errors.New("conversion quantity must be greater than zero"))
	}
	c.quantity = quantity
	return nil
}

func (c *Conversion) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", errors.New("sale price must not be negative"))
	}
	c.price = price
	return nil
}

func (c *Conversion) setSalesOrderLineID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.salesOrderLineID = id
	return nil
}
