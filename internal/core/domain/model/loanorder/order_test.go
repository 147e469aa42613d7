package loanorder_test

import (
	"errors"
	"testing"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func qty(t *testing.T, v int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantityFromInt(v)
	require.NoError(t, err)
	return q
}

func newTestOrder(t *testing.T, opts loanorder.Options) *loanorder.Order {
	t.Helper()
	o, err := loanorder.NewOrder(
		kernel.NewUUID(),
		"LO-0001",
		kernel.NewUUID(),
		nil,
		"demo units for evaluation",
		nil,
		testToday,
		opts,
	)
	require.NoError(t, err)
	return o
}

func addTestLine(t *testing.T, o *loanorder.Order, quantity int64) *loanorder.LineItem {
	t.Helper()
	line, err := o.AddLineItem(kernel.NewUUID(), kernel.NewUUID(), qty(t, quantity), nil, loanorder.DefaultOptions())
	require.NoError(t, err)
	return line
}

func TestNewOrder(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		borrower := kernel.NewUUID()
		due := testToday.AddDate(0, 1, 0)

		o, err := loanorder.NewOrder(id, "LO-0042", borrower, nil, "trial pumps", &due, testToday, opts)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "LO-0042", o.Reference())
		assert.True(t, o.BorrowerID().IsEqual(borrower))
		assert.Equal(t, loanorder.Pending, o.Status())
		assert.Nil(t, o.ResponsibleID())
		assert.Nil(t, o.IssueDate())
		require.NotNil(t, o.DueDate())
		assert.True(t, o.TotalPrice().IsZero())
	})

	t.Run("should record creation event", func(t *testing.T) {
		o := newTestOrder(t, opts)

		require.Len(t, o.Events(), 1)
		assert.Equal(t, loanorder.EventOrderCreated, o.Events()[0].Type)
		assert.True(t, o.Events()[0].OrderID.IsEqual(o.ID()))
		assert.Equal(t, o.Reference(), o.Events()[0].Reference)

		o.ClearEvents()
		assert.Empty(t, o.Events())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := loanorder.NewOrder(invalidID, "LO-1", kernel.NewUUID(), nil, "", nil, testToday, opts)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty reference", func(t *testing.T) {
		o, err := loanorder.NewOrder(kernel.NewUUID(), "", kernel.NewUUID(), nil, "", nil, testToday, opts)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("should fail when responsible is required but missing", func(t *testing.T) {
		strict := opts
		strict.RequireResponsible = true

		o, err := loanorder.NewOrder(kernel.NewUUID(), "LO-1", kernel.NewUUID(), nil, "", nil, testToday, strict)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("should accept responsible when required", func(t *testing.T) {
		strict := opts
		strict.RequireResponsible = true
		responsible := kernel.NewUUID()

		o, err := loanorder.NewOrder(kernel.NewUUID(), "LO-1", kernel.NewUUID(), &responsible, "", nil, testToday, strict)

		require.NoError(t, err)
		require.NotNil(t, o.ResponsibleID())
		assert.True(t, o.ResponsibleID().IsEqual(responsible))
	})

	t.Run("should fail when due date precedes creation date", func(t *testing.T) {
		due := testToday.AddDate(0, 0, -1)

		o, err := loanorder.NewOrder(kernel.NewUUID(), "LO-1", kernel.NewUUID(), nil, "", &due, testToday, opts)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should accept due date on the creation day", func(t *testing.T) {
		due := testToday.Add(2 * time.Hour)

		o, err := loanorder.NewOrder(kernel.NewUUID(), "LO-1", kernel.NewUUID(), nil, "", &due, testToday, opts)

		require.NoError(t, err)
		assert.NotNil(t, o)
	})
}

func TestOrderValidate(t *testing.T) {
	t.Run("should fail for nil order", func(t *testing.T) {
		var o *loanorder.Order
		assert.ErrorIs(t, o.Validate(), loanorder.ErrOrderIsNotConstructed)
	})

	t.Run("should fail for zero value order", func(t *testing.T) {
		o := &loanorder.Order{}
		assert.ErrorIs(t, o.Validate(), loanorder.ErrOrderIsNotConstructed)
	})
}

func TestOrderLineItems(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("should add line items", func(t *testing.T) {
		o := newTestOrder(t, opts)
		price := decimal.NewFromInt(5)

		line, err := o.AddLineItem(kernel.NewUUID(), kernel.NewUUID(), qty(t, 10), &price, opts)

		require.NoError(t, err)
		assert.Len(t, o.LineItems(), 1)
		assert.Equal(t, loanorder.LinePending, line.Status())
		assert.True(t, line.Quantity().IsEqual(qty(t, 10)))
		assert.True(t, line.RemainingToShip().IsEqual(qty(t, 10)))
	})

	t.Run("should reject duplicate part", func(t *testing.T) {
		o := newTestOrder(t, opts)
		partID := kernel.NewUUID()

		_, err := o.AddLineItem(kernel.NewUUID(), partID, qty(t, 5), nil, opts)
		require.NoError(t, err)

		_, err = o.AddLineItem(kernel.NewUUID(), partID, qty(t, 3), nil, opts)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		o := newTestOrder(t, opts)

		_, err := o.AddLineItem(kernel.NewUUID(), kernel.NewUUID(), kernel.ZeroQuantity(), nil, opts)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should remove unshipped line", func(t *testing.T) {
		o := newTestOrder(t, opts)
		line := addTestLine(t, o, 5)

		require.NoError(t, o.RemoveLineItem(line.ID(), opts))
		assert.Empty(t, o.LineItems())
	})

	t.Run("should fail removing unknown line", func(t *testing.T) {
		o := newTestOrder(t, opts)

		err := o.RemoveLineItem(kernel.NewUUID(), opts)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
	})
}

func TestOrderExtraLines(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("should add extra line and include it in total", func(t *testing.T) {
		o := newTestOrder(t, opts)
		extra, err := loanorder.NewExtraLine(
			kernel.NewUUID(), "SHIP", "shipping and handling", qty(t, 2), decimal.NewFromInt(15), "")
		require.NoError(t, err)

		require.NoError(t, o.AddExtraLine(extra, opts))
		o.RecalculateTotalPrice()

		assert.True(t, o.TotalPrice().Equal(decimal.NewFromInt(30)))
	})

	t.Run("should remove extra line", func(t *testing.T) {
		o := newTestOrder(t, opts)
		extra, err := loanorder.NewExtraLine(
			kernel.NewUUID(), "INS", "insurance", qty(t, 1), decimal.NewFromInt(50), "")
		require.NoError(t, err)
		require.NoError(t, o.AddExtraLine(extra, opts))

		require.NoError(t, o.RemoveExtraLine(extra.ID(), opts))
		assert.Empty(t, o.ExtraLines())
	})

	t.Run("should reject negative price", func(t *testing.T) {
		_, err := loanorder.NewExtraLine(
			kernel.NewUUID(), "X", "", qty(t, 1), decimal.NewFromInt(-1), "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})
}

func TestOrderTotalPrice(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("should sum loan fees and extra charges", func(t *testing.T) {
		o := newTestOrder(t, opts)
		fee := decimal.RequireFromString("2.50")
		_, err := o.AddLineItem(kernel.NewUUID(), kernel.NewUUID(), qty(t, 4), &fee, opts)
		require.NoError(t, err)
		addTestLine(t, o, 7) // free loan line

		extra, err := loanorder.NewExtraLine(
			kernel.NewUUID(), "SHIP", "freight", qty(t, 1), decimal.NewFromInt(20), "")
		require.NoError(t, err)
		require.NoError(t, o.AddExtraLine(extra, opts))

		o.RecalculateTotalPrice()

		assert.True(t, o.TotalPrice().Equal(decimal.NewFromInt(30)), o.TotalPrice().String())
	})
}

func TestOrderApprove(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("should approve pending order with lines", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)

		require.NoError(t, o.Approve())

		assert.Equal(t, loanorder.Approved, o.Status())
		last := o.Events()[len(o.Events())-1]
		assert.Equal(t, loanorder.EventOrderApproved, last.Type)
	})

	t.Run("should reject approving an order without lines", func(t *testing.T) {
		o := newTestOrder(t, opts)

		err := o.Approve()

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
		assert.Equal(t, loanorder.Pending, o.Status())
	})

	t.Run("should reject approving twice", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Approve())

		err := o.Approve()

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
	})
}

func TestOrderIssue(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("should issue directly from pending", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)

		require.NoError(t, o.Issue(testToday))

		assert.Equal(t, loanorder.Issued, o.Status())
		require.NotNil(t, o.IssueDate())
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *o.IssueDate())
	})

	t.Run("should issue from approved", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Approve())

		require.NoError(t, o.Issue(testToday))

		assert.Equal(t, loanorder.Issued, o.Status())
	})

	t.Run("should reject issuing without lines", func(t *testing.T) {
		o := newTestOrder(t, opts)

		err := o.Issue(testToday)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})
}

func TestOrderHoldAndResume(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("should resume a held pending order to pending", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Hold())
		assert.Equal(t, loanorder.OnHold, o.Status())

		require.NoError(t, o.Resume())

		assert.Equal(t, loanorder.Pending, o.Status())
	})

	t.Run("should resume a held issued order to issued", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Issue(testToday))
		require.NoError(t, o.Hold())

		require.NoError(t, o.Resume())

		assert.Equal(t, loanorder.Issued, o.Status())
	})

	t.Run("should allow cancelling a held order", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Hold())

		require.NoError(t, o.Cancel())

		assert.Equal(t, loanorder.Cancelled, o.Status())
	})
}

func TestOrderCancel(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("should cancel a pending order", func(t *testing.T) {
		o := newTestOrder(t, opts)

		require.NoError(t, o.Cancel())

		assert.Equal(t, loanorder.Cancelled, o.Status())
		assert.True(t, o.Status().IsFailed())
	})

	t.Run("should reject cancelling an issued order", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Issue(testToday))

		err := o.Cancel()

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
	})
}

func TestOrderActionPredicates(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("pending order", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)

		assert.True(t, o.CanApprove())
		assert.True(t, o.CanIssue())
		assert.True(t, o.CanCancel())
		assert.True(t, o.CanHold())
		assert.False(t, o.CanReturn())
		assert.False(t, o.CanConvertToSale())
		assert.False(t, o.CanWriteOff())
	})

	t.Run("approved order", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Approve())

		assert.False(t, o.CanApprove())
		assert.True(t, o.CanIssue())
		assert.False(t, o.CanCancel())
		assert.False(t, o.CanHold())
	})

	t.Run("held order", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Hold())

		assert.True(t, o.CanIssue())
		assert.True(t, o.CanCancel())
		assert.False(t, o.CanHold())
	})

	t.Run("issued order with nothing shipped", func(t *testing.T) {
		o := newTestOrder(t, opts)
		addTestLine(t, o, 5)
		require.NoError(t, o.Issue(testToday))

		assert.False(t, o.CanIssue())
		assert.False(t, o.CanCancel())
		assert.True(t, o.CanHold())
		assert.False(t, o.CanReturn(), "nothing shipped yet")
		assert.False(t, o.CanConvertToSale())
		assert.False(t, o.CanWriteOff())
	})

	t.Run("issued order with a partial shipment", func(t *testing.T) {
		o := newTestOrder(t, opts)
		line := addTestLine(t, o, 10)
		require.NoError(t, o.Issue(testToday))
		_, err := o.ShipLineItems([]loanorder.ShipmentItem{
			{LineID: line.ID(), StockItemID: kernel.NewUUID(), Quantity: qty(t, 4)},
		}, unlimitedStock(t), testToday)
		require.NoError(t, err)

		assert.True(t, o.CanReturn())
		assert.True(t, o.CanConvertToSale())
		assert.True(t, o.CanWriteOff())
		assert.True(t, o.CanHold())
	})

	t.Run("terminal order", func(t *testing.T) {
		o := newTestOrder(t, opts)
		require.NoError(t, o.Cancel())

		assert.False(t, o.CanApprove())
		assert.False(t, o.CanIssue())
		assert.False(t, o.CanCancel())
		assert.False(t, o.CanHold())
		assert.False(t, o.CanReturn())
		assert.False(t, o.CanConvertToSale())
		assert.False(t, o.CanWriteOff())
	})
}

func TestLineItemPredicates(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("partially converted line", func(t *testing.T) {
		o, line, _ := shippedOrder(t, opts, 10)

		transfers, err := o.PlanLineConversion(line.ID(), qty(t, 4))
		require.NoError(t, err)
		_, err = o.ApplyLineConversion(
			line.ID(), qty(t, 4), decimal.NewFromInt(10), kernel.NewUUID(), applyPlanned(transfers), testToday)
		require.NoError(t, err)

		assert.True(t, line.IsPartiallyConverted())
		assert.False(t, line.IsFullyConverted())

		transfers, err = o.PlanLineConversion(line.ID(), qty(t, 6))
		require.NoError(t, err)
		_, err = o.ApplyLineConversion(
			line.ID(), qty(t, 6), decimal.NewFromInt(10), kernel.NewUUID(), applyPlanned(transfers), testToday)
		require.NoError(t, err)

		assert.False(t, line.IsPartiallyConverted(), "everything shipped is sold now")
		assert.True(t, line.IsFullyConverted())
	})

	t.Run("unconverted line is not partially converted", func(t *testing.T) {
		_, line, _ := shippedOrder(t, opts, 10)

		assert.False(t, line.IsPartiallyConverted())
	})

	t.Run("overallocated line", func(t *testing.T) {
		over, err := loanorder.RestoreAllocation(
			kernel.NewUUID(), kernel.NewUUID(), qty(t, 12), kernel.ZeroQuantity(), false, nil, testToday)
		require.NoError(t, err)
		line, err := loanorder.RestoreLineItem(
			kernel.NewUUID(), kernel.NewUUID(), "L1", "",
			qty(t, 10), qty(t, 10), kernel.ZeroQuantity(), kernel.ZeroQuantity(), kernel.ZeroQuantity(),
			nil, loanorder.LineShipped, []*loanorder.Allocation{over}, nil)
		require.NoError(t, err)

		assert.True(t, line.IsOverallocated())
	})

	t.Run("fully allocated line is not overallocated", func(t *testing.T) {
		_, line, _ := shippedOrder(t, opts, 10)

		assert.True(t, line.IsFullyAllocated())
		assert.False(t, line.IsOverallocated())
	})
}

func TestOrderLocking(t *testing.T) {
	t.Run("should lock cancelled order against edits", func(t *testing.T) {
		opts := loanorder.DefaultOptions()
		o := newTestOrder(t, opts)
		require.NoError(t, o.Cancel())

		_, err := o.AddLineItem(kernel.NewUUID(), kernel.NewUUID(), qty(t, 1), nil, opts)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrOrderIsLocked))
	})

	t.Run("should allow edits on completed order when options permit", func(t *testing.T) {
		opts := loanorder.DefaultOptions()
		opts.AllowEditCompletedOrders = true
		o := newTestOrder(t, opts)
		require.NoError(t, o.Cancel())

		_, err := o.AddLineItem(kernel.NewUUID(), kernel.NewUUID(), qty(t, 1), nil, opts)

		require.NoError(t, err)
	})
}

func TestOrderIsOverdue(t *testing.T) {
	opts := loanorder.DefaultOptions()

	t.Run("open order past due date is overdue", func(t *testing.T) {
		due := testToday.AddDate(0, 0, 5)
		o, err := loanorder.NewOrder(kernel.NewUUID(), "LO-1", kernel.NewUUID(), nil, "", &due, testToday, opts)
		require.NoError(t, err)

		assert.False(t, o.IsOverdue(due))
		assert.False(t, o.IsOverdue(due.Add(12*time.Hour)), "same calendar day is not overdue")
		assert.True(t, o.IsOverdue(due.AddDate(0, 0, 1)))
	})

	t.Run("order without due date is never overdue", func(t *testing.T) {
		o := newTestOrder(t, opts)

		assert.False(t, o.IsOverdue(testToday.AddDate(1, 0, 0)))
	})

	t.Run("closed order is never overdue", func(t *testing.T) {
		due := testToday.AddDate(0, 0, 1)
		o, err := loanorder.NewOrder(kernel.NewUUID(), "LO-1", kernel.NewUUID(), nil, "", &due, testToday, opts)
		require.NoError(t, err)
		require.NoError(t, o.Cancel())

		assert.False(t, o.IsOverdue(due.AddDate(0, 1, 0)))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order with lines", func(t *testing.T) {
		id := kernel.NewUUID()
		borrower := kernel.NewUUID()
		line, err := loanorder.RestoreLineItem(
			kernel.NewUUID(), kernel.NewUUID(), "L1", "",
			qty(t, 10), qty(t, 4), qty(t, 1), kernel.ZeroQuantity(), kernel.ZeroQuantity(),
			nil, loanorder.LinePending, nil, nil)
		require.NoError(t, err)

		o, err := loanorder.RestoreOrder(
			id, "LO-7", borrower, nil, "restored", loanorder.Shipped,
			testToday, nil, nil, nil, nil, decimal.Zero,
			[]*loanorder.LineItem{line}, nil)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, loanorder.Shipped, o.Status())
		assert.Empty(t, o.Events(), "restoring must not record events")
		assert.Len(t, o.LineItems(), 1)
		assert.True(t, line.OnLoan().IsEqual(qty(t, 3)))
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := loanorder.RestoreOrder(
			kernel.NewUUID(), "LO-7", kernel.NewUUID(), nil, "", loanorder.Status(42),
			testToday, nil, nil, nil, nil, decimal.Zero, nil, nil)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})
}
