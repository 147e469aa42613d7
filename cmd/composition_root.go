package cmd

import (
	"log/slog"

	"loans/internal/adapters/out/eventbus"
	"loans/internal/adapters/out/postgres"
	"loans/internal/core/application/usecases/commands"
	"loans/internal/core/application/usecases/queries"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/domain/services"
	"loans/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	options    loanorder.Options
	publisher  *eventbus.Dispatcher
	planner    services.ShipmentPlanner
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		options: loanorder.Options{
			RequireResponsible:       config.RequireResponsible,
			AutoCompleteOnFullReturn: config.AutoCompleteReturns,
			AllowEditCompletedOrders: config.AllowEditCompleted,
			DueDateReminderDays:      config.DueDateReminderDays,
		},
		publisher: eventbus.NewDispatcher(logger),
		planner:   services.NewShipmentPlanner(),
		logger:    logger,
	}
}

func (c *CompositionRoot) EventDispatcher() *eventbus.Dispatcher {
	return c.publisher
}

func (c *CompositionRoot) loanOrderUoWFactory() commands.LoanOrderUoWFactory {
	return FuncLoanOrderUoWFactory(func() commands.LoanOrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher, c.options)
}

func (c *CompositionRoot) CreateAddLineItemCommandHandler() commands.AddLineItemCommandHandler {
	return commands.NewAddLineItemCommandHandler(c.loanOrderUoWFactory(), c.publisher, c.options)
}

func (c *CompositionRoot) CreateRemoveLineItemCommandHandler() commands.RemoveLineItemCommandHandler {
	return commands.NewRemoveLineItemCommandHandler(c.loanOrderUoWFactory(), c.publisher, c.options)
}

func (c *CompositionRoot) CreateAddExtraLineCommandHandler() commands.AddExtraLineCommandHandler {
	return commands.NewAddExtraLineCommandHandler(c.loanOrderUoWFactory(), c.publisher, c.options)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	return commands.NewApproveOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateIssueOrderCommandHandler() commands.IssueOrderCommandHandler {
	return commands.NewIssueOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateHoldOrderCommandHandler() commands.HoldOrderCommandHandler {
	return commands.NewHoldOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateResumeOrderCommandHandler() commands.ResumeOrderCommandHandler {
	return commands.NewResumeOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateReturnOrderCommandHandler() commands.ReturnOrderCommandHandler {
	return commands.NewReturnOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateWriteOffOrderCommandHandler() commands.WriteOffOrderCommandHandler {
	return commands.NewWriteOffOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateConvertOrderCommandHandler() commands.ConvertOrderCommandHandler {
	return commands.NewConvertOrderCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateShipItemsCommandHandler() commands.ShipItemsCommandHandler {
	return commands.NewShipItemsCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateShipAllCommandHandler() commands.ShipAllCommandHandler {
	return commands.NewShipAllCommandHandler(c.loanOrderUoWFactory(), c.planner, c.publisher)
}

func (c *CompositionRoot) CreateReturnItemsCommandHandler() commands.ReturnItemsCommandHandler {
	return commands.NewReturnItemsCommandHandler(c.loanOrderUoWFactory(), c.publisher, c.options)
}

func (c *CompositionRoot) CreateConvertLineItemsCommandHandler() commands.ConvertLineItemsCommandHandler {
	return commands.NewConvertLineItemsCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateSellReturnedItemsCommandHandler() commands.SellReturnedItemsCommandHandler {
	return commands.NewSellReturnedItemsCommandHandler(c.loanOrderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersDueWithinQueryHandler() queries.GetOrdersDueWithinQueryHandler {
	return queries.NewGetOrdersDueWithinQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetOverdueOrdersQueryHandler(),
		c.CreateGetOrdersDueWithinQueryHandler(),
		c.publisher,
		c.options,
		c.logger,
	)
}

type FuncLoanOrderUoWFactory func() commands.LoanOrderUoW

func (f FuncLoanOrderUoWFactory) Create() commands.LoanOrderUoW {
	return f()
}
