package commands_test

import (
	"testing"
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"

	"github.com/stretchr/testify/require"
)

var handlerTestNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func qty(t *testing.T, value int64) kernel.Quantity {
	t.Helper()
	q, err := kernel.NewQuantityFromInt(value)
	require.NoError(t, err)
	return q
}

// newPendingOrder builds a pending order with one line of the given
// quantity and no recorded events.
func newPendingOrder(t *testing.T, quantity int64) (*loanorder.Order, *loanorder.LineItem) {
	t.Helper()
	order, err := loanorder.NewOrder(
		kernel.NewUUID(), "LO-0001", kernel.NewUUID(), nil, "", nil, handlerTestNow, loanorder.DefaultOptions())
	require.NoError(t, err)

	line, err := order.AddLineItem(
		kernel.NewUUID(), kernel.NewUUID(), qty(t, quantity), nil, loanorder.DefaultOptions())
	require.NoError(t, err)

	order.ClearEvents()
	return order, line
}

// newShippedOrder builds an order with one fully shipped line and
// returns the allocation the shipment produced.
func newShippedOrder(t *testing.T, quantity int64) (*loanorder.Order, *loanorder.LineItem, *loanorder.Allocation) {
	t.Helper()
	order, line := newPendingOrder(t, quantity)

	unlimited := func(_ kernel.UUID) (kernel.Quantity, error) {
		return qty(t, 1_000_000), nil
	}
	touched, err := order.ShipLineItems([]loanorder.ShipmentItem{
		{LineID: line.ID(), StockItemID: kernel.NewUUID(), Quantity: qty(t, quantity)},
	}, unlimited, handlerTestNow)
	require.NoError(t, err)
	require.Len(t, touched, 1)

	order.ClearEvents()
	return order, line, touched[0]
}
