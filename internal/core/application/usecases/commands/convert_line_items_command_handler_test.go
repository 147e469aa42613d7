package commands_test

import (
	"testing"

	"loans/internal/core/application/usecases/commands"
	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConvertLineItemsCommandHandler_Handle_NewSalesOrder(t *testing.T) {
	ctx := t.Context()
	order, line, allocation := newShippedOrder(t, 5)
	price := decimal.NewFromInt(120)

	cmd, err := commands.NewConvertLineItemsCommand(order.ID(), []commands.ConversionItemInput{
		{LineID: line.ID(), Quantity: qty(t, 3), Price: price},
	}, nil)
	require.NoError(t, err)

	salesOrderID := kernel.NewUUID()
	salesLineID := kernel.NewUUID()
	salesAllocationID := kernel.NewUUID()

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	sales := new(MockSalesOrderService)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanOrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once(),
		uow.On("SalesOrderService").Return(sales).Once(),
		sales.On("ReferenceExists", mock.Anything, "SO-LOAN-LO-0001").Return(false, nil).Once(),
		sales.On("CreateOrder",
			mock.Anything, order.BorrowerID(), "SO-LOAN-LO-0001", "Conversion of loan order LO-0001").
			Return(salesOrderID, nil).Once(),
		sales.On("AddLine", mock.Anything, salesOrderID, line.PartID(), qty(t, 3), price).
			Return(salesLineID, nil).Once(),
		sales.On("Allocate", mock.Anything, salesLineID, allocation.StockItemID(), qty(t, 3)).
			Return(salesAllocationID, nil).Once(),
		repo.On("Update", mock.Anything, order).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	h := commands.NewConvertLineItemsCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.True(t, line.Converted().IsEqual(qty(t, 3)))
	require.True(t, line.Shipped().IsEqual(qty(t, 5)))
	require.True(t, allocation.IsConverted())
	require.NotNil(t, allocation.SalesAllocationID())
	require.True(t, allocation.SalesAllocationID().IsEqual(salesAllocationID))
	require.NotEmpty(t, publisher.Events)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	sales.AssertExpectations(t)
}

func TestConvertLineItemsCommandHandler_Handle_SuffixedReference(t *testing.T) {
	ctx := t.Context()
	order, line, _ := newShippedOrder(t, 5)
	price := decimal.NewFromInt(120)

	cmd, err := commands.NewConvertLineItemsCommand(order.ID(), []commands.ConversionItemInput{
		{LineID: line.ID(), Quantity: qty(t, 5), Price: price},
	}, nil)
	require.NoError(t, err)

	salesOrderID := kernel.NewUUID()

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	sales := new(MockSalesOrderService)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LoanOrderRepository").Return(repo).Once()
	uow.On("SalesOrderService").Return(sales).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()
	repo.On("Update", mock.Anything, order).Return(nil).Once()
	sales.On("ReferenceExists", mock.Anything, "SO-LOAN-LO-0001").Return(true, nil).Once()
	sales.On("ReferenceExists", mock.Anything, "SO-LOAN-LO-0001-2").Return(true, nil).Once()
	sales.On("ReferenceExists", mock.Anything, "SO-LOAN-LO-0001-3").Return(false, nil).Once()
	sales.On("CreateOrder", mock.Anything, order.BorrowerID(), "SO-LOAN-LO-0001-3", mock.Anything).
		Return(salesOrderID, nil).Once()
	sales.On("AddLine", mock.Anything, salesOrderID, line.PartID(), qty(t, 5), price).
		Return(kernel.NewUUID(), nil).Once()
	sales.On("Allocate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(kernel.NewUUID(), nil).Once()

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConvertLineItemsCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))
	sales.AssertExpectations(t)
}

func TestConvertLineItemsCommandHandler_Handle_ExistingSalesOrder(t *testing.T) {
	ctx := t.Context()
	order, line, _ := newShippedOrder(t, 5)
	price := decimal.NewFromInt(99)
	salesOrderID := kernel.NewUUID()

	cmd, err := commands.NewConvertLineItemsCommand(order.ID(), []commands.ConversionItemInput{
		{LineID: line.ID(), Quantity: qty(t, 2), Price: price},
	}, &salesOrderID)
	require.NoError(t, err)

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	sales := new(MockSalesOrderService)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LoanOrderRepository").Return(repo).Once()
	uow.On("SalesOrderService").Return(sales).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()
	repo.On("Update", mock.Anything, order).Return(nil).Once()
	sales.On("AddLine", mock.Anything, salesOrderID, line.PartID(), qty(t, 2), price).
		Return(kernel.NewUUID(), nil).Once()
	sales.On("Allocate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(kernel.NewUUID(), nil).Once()

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConvertLineItemsCommandHandler(factory, nil)
	require.NoError(t, h.Handle(ctx, cmd))

	sales.AssertNotCalled(t, "ReferenceExists", mock.Anything, mock.Anything)
	sales.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertLineItemsCommandHandler_Handle_BadEntryWritesNothing(t *testing.T) {
	ctx := t.Context()
	order, line, _ := newShippedOrder(t, 5)

	// Second entry exceeds what is out on loan, so the first must not
	// reach the sales side either.
	cmd, err := commands.NewConvertLineItemsCommand(order.ID(), []commands.ConversionItemInput{
		{LineID: line.ID(), Quantity: qty(t, 2), Price: decimal.NewFromInt(10)},
		{LineID: line.ID(), Quantity: qty(t, 9), Price: decimal.NewFromInt(10)},
	}, nil)
	require.NoError(t, err)

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	sales := new(MockSalesOrderService)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LoanOrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConvertLineItemsCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	require.True(t, line.Converted().IsZero())
	sales.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	sales.AssertNotCalled(t, "AddLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestConvertLineItemsCommandHandler_Handle_JointOverdrawRejected(t *testing.T) {
	ctx := t.Context()
	order, line, _ := newShippedOrder(t, 5)

	// Each entry fits on its own; together they exceed the line's
	// out-on-loan quantity.
	cmd, err := commands.NewConvertLineItemsCommand(order.ID(), []commands.ConversionItemInput{
		{LineID: line.ID(), Quantity: qty(t, 3), Price: decimal.NewFromInt(10)},
		{LineID: line.ID(), Quantity: qty(t, 3), Price: decimal.NewFromInt(10)},
	}, nil)
	require.NoError(t, err)

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	sales := new(MockSalesOrderService)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("LoanOrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConvertLineItemsCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	require.True(t, line.Converted().IsZero())
	sales.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestConvertLineItemsCommandHandler_Handle_EmptyBatchRejected(t *testing.T) {
	_, err := commands.NewConvertLineItemsCommand(kernel.NewUUID(), nil, nil)
	require.ErrorIs(t, err, commands.ErrConversionItemsAreRequired)
}

func TestConvertLineItemsCommand_NegativePriceRejected(t *testing.T) {
	_, err := commands.NewConvertLineItemsCommand(kernel.NewUUID(), []commands.ConversionItemInput{
		{LineID: kernel.NewUUID(), Quantity: qty(t, 1), Price: decimal.NewFromInt(-1)},
	}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestSellReturnedItemsCommand_NegativePriceRejected(t *testing.T) {
	_, err := commands.NewSellReturnedItemsCommand(kernel.NewUUID(), []commands.ConversionItemInput{
		{LineID: kernel.NewUUID(), Quantity: qty(t, 1), Price: decimal.NewFromInt(-1)},
	}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
