package commands_test

import (
	"testing"

	"loans/internal/core/application/usecases/commands"
	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
	"loans/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShipItemsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	order, line := newPendingOrder(t, 5)
	stockItemID := kernel.NewUUID()

	cmd, err := commands.NewShipItemsCommand(order.ID(), []loanorder.ShipmentItem{
		{LineID: line.ID(), StockItemID: stockItemID, Quantity: qty(t, 5)},
	})
	require.NoError(t, err)

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	stock := new(MockStockService)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanOrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once(),
		uow.On("StockService").Return(stock).Once(),
		stock.On("UnallocatedQuantity", mock.Anything, stockItemID).Return(qty(t, 10), nil).Once(),
		stock.On("RecordMovement",
			mock.Anything, stockItemID, ports.MovementLoanedOut, qty(t, 5), order.ID()).Return(nil).Once(),
		repo.On("Update", mock.Anything, order).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	h := commands.NewShipItemsCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, loanorder.Shipped, order.Status())
	require.True(t, line.Shipped().IsEqual(qty(t, 5)))
	require.NotEmpty(t, publisher.Events)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	stock.AssertExpectations(t)
}

func TestShipItemsCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	order, line := newPendingOrder(t, 5)
	stockItemID := kernel.NewUUID()

	cmd, err := commands.NewShipItemsCommand(order.ID(), []loanorder.ShipmentItem{
		{LineID: line.ID(), StockItemID: stockItemID, Quantity: qty(t, 5)},
	})
	require.NoError(t, err)

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	stock := new(MockStockService)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanOrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once(),
		uow.On("StockService").Return(stock).Once(),
		stock.On("UnallocatedQuantity", mock.Anything, stockItemID).Return(qty(t, 2), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewShipItemsCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrOverAllocation)

	require.Equal(t, loanorder.Pending, order.Status())
	require.True(t, line.Shipped().IsZero())
	stock.AssertNotCalled(t, "RecordMovement",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestShipItemsCommandHandler_Handle_EmptyBatchRejected(t *testing.T) {
	_, err := commands.NewShipItemsCommand(kernel.NewUUID(), nil)
	require.ErrorIs(t, err, commands.ErrShipmentItemsAreRequired)
}
