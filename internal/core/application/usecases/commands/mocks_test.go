package commands_test

import (
	"context"

	"loans/internal/core/application/usecases/commands"
	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockLoanOrderRepository struct{ mock.Mock }

func (m *MockLoanOrderRepository) Add(ctx context.Context, o *loanorder.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockLoanOrderRepository) Update(ctx context.Context, o *loanorder.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockLoanOrderRepository) Get(ctx context.Context, id kernel.UUID) (*loanorder.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loanorder.Order), args.Error(1)
}

func (m *MockLoanOrderRepository) GetByReference(ctx context.Context, reference string) (*loanorder.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loanorder.Order), args.Error(1)
}

type MockLoanOrderUoW struct{ mock.Mock }

func (m *MockLoanOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoanOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoanOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLoanOrderUoW) LoanOrderRepository() ports.LoanOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.LoanOrderRepository)
}

func (m *MockLoanOrderUoW) StockService() ports.StockService {
	args := m.Called()
	return args.Get(0).(ports.StockService)
}

func (m *MockLoanOrderUoW) SalesOrderService() ports.SalesOrderService {
	args := m.Called()
	return args.Get(0).(ports.SalesOrderService)
}

type MockLoanOrderUoWFactory struct{ mock.Mock }

func (m *MockLoanOrderUoWFactory) Create() commands.LoanOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.LoanOrderUoW)
}

type MockStockService struct{ mock.Mock }

func (m *MockStockService) UnallocatedQuantity(ctx context.Context, stockItemID kernel.UUID) (kernel.Quantity, error) {
	args := m.Called(ctx, stockItemID)
	return args.Get(0).(kernel.Quantity), args.Error(1)
}

func (m *MockStockService) ItemsForPart(ctx context.Context, partID kernel.UUID) ([]ports.StockItem, error) {
	args := m.Called(ctx, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.StockItem), args.Error(1)
}

func (m *MockStockService) RecordMovement(
	ctx context.Context,
	stockItemID kernel.UUID,
	movement ports.StockMovement,
	quantity kernel.Quantity,
	orderID kernel.UUID,
) error {
	args := m.Called(ctx, stockItemID, movement, quantity, orderID)
	return args.Error(0)
}

func (m *MockStockService) Relocate(ctx context.Context, stockItemID kernel.UUID, locationID kernel.UUID) error {
	args := m.Called(ctx, stockItemID, locationID)
	return args.Error(0)
}

func (m *MockStockService) SetStatus(ctx context.Context, stockItemID kernel.UUID, status string) error {
	args := m.Called(ctx, stockItemID, status)
	return args.Error(0)
}

type MockSalesOrderService struct{ mock.Mock }

func (m *MockSalesOrderService) CreateOrder(
	ctx context.Context,
	customerID kernel.UUID,
	reference string,
	description string,
) (kernel.UUID, error) {
	args := m.Called(ctx, customerID, reference, description)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockSalesOrderService) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesOrderService) AddLine(
	ctx context.Context,
	orderID kernel.UUID,
	partID kernel.UUID,
	quantity kernel.Quantity,
	price decimal.Decimal,
) (kernel.UUID, error) {
	args := m.Called(ctx, orderID, partID, quantity, price)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockSalesOrderService) Allocate(
	ctx context.Context,
	lineID kernel.UUID,
	stockItemID kernel.UUID,
	quantity kernel.Quantity,
) (kernel.UUID, error) {
	args := m.Called(ctx, lineID, stockItemID, quantity)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

// RecordingPublisher collects published events for assertions.
type RecordingPublisher struct {
	Events []loanorder.Event
}

func (p *RecordingPublisher) Publish(_ context.Context, events []loanorder.Event) {
	p.Events = append(p.Events, events...)
}
