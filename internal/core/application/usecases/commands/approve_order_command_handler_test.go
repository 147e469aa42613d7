package commands_test

import (
	"testing"

	"loans/internal/core/application/usecases/commands"
	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApproveOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	order, _ := newPendingOrder(t, 5)
	cmd, _ := commands.NewApproveOrderCommand(order.ID())

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanOrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once(),
		repo.On("Update", mock.Anything, order).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(RecordingPublisher)
	h := commands.NewApproveOrderCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, loanorder.Approved, order.Status())
	require.Len(t, publisher.Events, 1)
	require.Equal(t, loanorder.EventOrderApproved, publisher.Events[0].Type)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestApproveOrderCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	order, _ := newPendingOrder(t, 5)
	cmd, _ := commands.NewApproveOrderCommand(order.ID())

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanOrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, order.ID()).
			Return(nil, errs.NewObjectNotFoundError("order", order.ID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveOrderCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApproveOrderCommandHandler_Handle_EmptyOrderRejected(t *testing.T) {
	ctx := t.Context()
	order, err := loanorder.NewOrder(
		kernel.NewUUID(), "LO-0002", kernel.NewUUID(), nil, "", nil, handlerTestNow, loanorder.DefaultOptions())
	require.NoError(t, err)
	order.ClearEvents()

	cmd, _ := commands.NewApproveOrderCommand(order.ID())

	repo := new(MockLoanOrderRepository)
	uow := new(MockLoanOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LoanOrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, order.ID()).Return(order, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLoanOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveOrderCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.Equal(t, loanorder.Pending, order.Status())
	uow.AssertNotCalled(t, "Commit", ctx)
}
