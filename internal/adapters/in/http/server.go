package http

import (
	"errors"
	"net/http"
	"time"

	"loans/internal/core/application/usecases/commands"
	"loans/internal/core/application/usecases/queries"
	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server exposes the loan order use cases over HTTP. It coordinates
// between request parsing and the application command and query
// handlers.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	addLineItemHandler       commands.AddLineItemCommandHandler
	removeLineItemHandler    commands.RemoveLineItemCommandHandler
	addExtraLineHandler      commands.AddExtraLineCommandHandler
	approveOrderHandler      commands.ApproveOrderCommandHandler
	issueOrderHandler        commands.IssueOrderCommandHandler
	holdOrderHandler         commands.HoldOrderCommandHandler
	resumeOrderHandler       commands.ResumeOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	returnOrderHandler       commands.ReturnOrderCommandHandler
	writeOffOrderHandler     commands.WriteOffOrderCommandHandler
	convertOrderHandler      commands.ConvertOrderCommandHandler
	shipItemsHandler         commands.ShipItemsCommandHandler
	shipAllHandler           commands.ShipAllCommandHandler
	returnItemsHandler       commands.ReturnItemsCommandHandler
	convertLineItemsHandler  commands.ConvertLineItemsCommandHandler
	sellReturnedItemsHandler commands.SellReturnedItemsCommandHandler

	// Query handlers
	getOpenOrdersHandler    queries.GetOpenOrdersQueryHandler
	getOverdueOrdersHandler queries.GetOverdueOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and
// query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addLineItemHandler commands.AddLineItemCommandHandler,
	removeLineItemHandler commands.RemoveLineItemCommandHandler,
	addExtraLineHandler commands.AddExtraLineCommandHandler,
	approveOrderHandler commands.ApproveOrderCommandHandler,
	issueOrderHandler commands.IssueOrderCommandHandler,
	holdOrderHandler commands.HoldOrderCommandHandler,
	resumeOrderHandler commands.ResumeOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	returnOrderHandler commands.ReturnOrderCommandHandler,
	writeOffOrderHandler commands.WriteOffOrderCommandHandler,
	convertOrderHandler commands.ConvertOrderCommandHandler,
	shipItemsHandler commands.ShipItemsCommandHandler,
	shipAllHandler commands.ShipAllCommandHandler,
	returnItemsHandler commands.ReturnItemsCommandHandler,
	convertLineItemsHandler commands.ConvertLineItemsCommandHandler,
	sellReturnedItemsHandler commands.SellReturnedItemsCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getOverdueOrdersHandler queries.GetOverdueOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		addLineItemHandler:       addLineItemHandler,
		removeLineItemHandler:    removeLineItemHandler,
		addExtraLineHandler:      addExtraLineHandler,
		approveOrderHandler:      approveOrderHandler,
		issueOrderHandler:        issueOrderHandler,
		holdOrderHandler:         holdOrderHandler,
		resumeOrderHandler:       resumeOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		returnOrderHandler:       returnOrderHandler,
		writeOffOrderHandler:     writeOffOrderHandler,
		convertOrderHandler:      convertOrderHandler,
		shipItemsHandler:         shipItemsHandler,
		shipAllHandler:           shipAllHandler,
		returnItemsHandler:       returnItemsHandler,
		convertLineItemsHandler:  convertLineItemsHandler,
		sellReturnedItemsHandler: sellReturnedItemsHandler,
		getOpenOrdersHandler:     getOpenOrdersHandler,
		getOverdueOrdersHandler:  getOverdueOrdersHandler,
	}
}

// RegisterRoutes attaches all loan order endpoints to the echo router.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/loan-orders", s.CreateLoanOrder)
	api.GET("/loan-orders/open", s.GetOpenLoanOrders)
	api.GET("/loan-orders/overdue", s.GetOverdueLoanOrders)

	api.POST("/loan-orders/:id/lines", s.AddLineItem)
	api.DELETE("/loan-orders/:id/lines/:lineId", s.RemoveLineItem)
	api.POST("/loan-orders/:id/extra-lines", s.AddExtraLine)

	api.POST("/loan-orders/:id/approve", s.ApproveLoanOrder)
	api.POST("/loan-orders/:id/issue", s.IssueLoanOrder)
	api.POST("/loan-orders/:id/hold", s.HoldLoanOrder)
	api.POST("/loan-orders/:id/resume", s.ResumeLoanOrder)
	api.POST("/loan-orders/:id/cancel", s.CancelLoanOrder)
	api.POST("/loan-orders/:id/complete-return", s.CompleteLoanOrderReturn)
	api.POST("/loan-orders/:id/write-off", s.WriteOffLoanOrder)
	api.POST("/loan-orders/:id/complete-conversion", s.CompleteLoanOrderConversion)

	api.POST("/loan-orders/:id/ship", s.ShipItems)
	api.POST("/loan-orders/:id/ship-all", s.ShipAll)
	api.POST("/loan-orders/:id/return-items", s.ReturnItems)
	api.POST("/loan-orders/:id/convert-items", s.ConvertLineItems)
	api.POST("/loan-orders/:id/sell-returned", s.SellReturnedItems)
}

// CreateLoanOrder handles POST /api/v1/loan-orders.
func (s *Server) CreateLoanOrder(ctx echo.Context) error {
	var body NewLoanOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	borrowerID, err := kernel.UUIDFromString(body.BorrowerID)
	if err != nil {
		return badRequest(ctx, "Invalid borrower ID")
	}

	var responsibleID *kernel.UUID
	if body.ResponsibleID != nil {
		id, err := kernel.UUIDFromString(*body.ResponsibleID)
		if err != nil {
			return badRequest(ctx, "Invalid responsible ID")
		}
		responsibleID = &id
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		body.Reference,
		borrowerID,
		responsibleID,
		body.Description,
		body.DueDate,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// AddLineItem handles POST /api/v1/loan-orders/:id/lines.
func (s *Server) AddLineItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body NewLineItem
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	partID, err := kernel.UUIDFromString(body.PartID)
	if err != nil {
		return badRequest(ctx, "Invalid part ID")
	}

	quantity, err := kernel.NewQuantityFromString(body.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid quantity")
	}

	var loanPrice *decimal.Decimal
	if body.LoanPrice != nil {
		price, err := decimal.NewFromString(*body.LoanPrice)
		if err != nil {
			return badRequest(ctx, "Invalid loan price")
		}
		loanPrice = &price
	}

	lineID := kernel.NewUUID()

	cmd, err := commands.NewAddLineItemCommand(orderID, lineID, partID, quantity, loanPrice)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.addLineItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": lineID.String()})
}

// RemoveLineItem handles DELETE /api/v1/loan-orders/:id/lines/:lineId.
func (s *Server) RemoveLineItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	lineID, err := pathUUID(ctx, "lineId")
	if err != nil {
		return badRequest(ctx, "Invalid line ID")
	}

	cmd, err := commands.NewRemoveLineItemCommand(orderID, lineID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.removeLineItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddExtraLine handles POST /api/v1/loan-orders/:id/extra-lines.
func (s *Server) AddExtraLine(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body NewExtraLine
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	quantity, err := kernel.NewQuantityFromString(body.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid quantity")
	}

	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return badRequest(ctx, "Invalid price")
	}

	lineID := kernel.NewUUID()

	cmd, err := commands.NewAddExtraLineCommand(
		orderID,
		lineID,
		body.Reference,
		body.Description,
		quantity,
		price,
		body.Notes,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.addExtraLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": lineID.String()})
}

// ApproveLoanOrder handles POST /api/v1/loan-orders/:id/approve.
func (s *Server) ApproveLoanOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewApproveOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.approveOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// IssueLoanOrder handles POST /api/v1/loan-orders/:id/issue.
func (s *Server) IssueLoanOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewIssueOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.issueOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// HoldLoanOrder handles POST /api/v1/loan-orders/:id/hold.
func (s *Server) HoldLoanOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewHoldOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.holdOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ResumeLoanOrder handles POST /api/v1/loan-orders/:id/resume.
func (s *Server) ResumeLoanOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewResumeOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.resumeOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelLoanOrder handles POST /api/v1/loan-orders/:id/cancel.
func (s *Server) CancelLoanOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewCancelOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CompleteLoanOrderReturn handles POST /api/v1/loan-orders/:id/complete-return.
func (s *Server) CompleteLoanOrderReturn(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewReturnOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.returnOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// WriteOffLoanOrder handles POST /api/v1/loan-orders/:id/write-off.
func (s *Server) WriteOffLoanOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewWriteOffOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.writeOffOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CompleteLoanOrderConversion handles POST /api/v1/loan-orders/:id/complete-conversion.
func (s *Server) CompleteLoanOrderConversion(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewConvertOrderCommand(orderID)
		if err != nil {
			return err
		}
		return s.convertOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ShipItems handles POST /api/v1/loan-orders/:id/ship.
func (s *Server) ShipItems(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body ShipmentRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]loanorder.ShipmentItem, 0, len(body.Items))
	for _, item := range body.Items {
		lineID, err := kernel.UUIDFromString(item.LineID)
		if err != nil {
			return badRequest(ctx, "Invalid line ID")
		}

		stockItemID, err := kernel.UUIDFromString(item.StockItemID)
		if err != nil {
			return badRequest(ctx, "Invalid stock item ID")
		}

		quantity, err := kernel.NewQuantityFromString(item.Quantity)
		if err != nil {
			return badRequest(ctx, "Invalid quantity")
		}

		items = append(items, loanorder.ShipmentItem{
			LineID:      lineID,
			StockItemID: stockItemID,
			Quantity:    quantity,
		})
	}

	cmd, err := commands.NewShipItemsCommand(orderID, items)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.shipItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ShipAll handles POST /api/v1/loan-orders/:id/ship-all.
func (s *Server) ShipAll(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID) error {
		cmd, err := commands.NewShipAllCommand(orderID)
		if err != nil {
			return err
		}
		return s.shipAllHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ReturnItems handles POST /api/v1/loan-orders/:id/return-items.
func (s *Server) ReturnItems(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body ReturnRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.ReturnItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		allocationID, err := kernel.UUIDFromString(item.AllocationID)
		if err != nil {
			return badRequest(ctx, "Invalid allocation ID")
		}

		quantity, err := kernel.NewQuantityFromString(item.Quantity)
		if err != nil {
			return badRequest(ctx, "Invalid quantity")
		}

		var locationID *kernel.UUID
		if item.LocationID != nil {
			id, err := kernel.UUIDFromString(*item.LocationID)
			if err != nil {
				return badRequest(ctx, "Invalid location ID")
			}
			locationID = &id
		}

		items = append(items, commands.ReturnItemInput{
			AllocationID: allocationID,
			Quantity:     quantity,
			StockStatus:  item.StockStatus,
			LocationID:   locationID,
		})
	}

	cmd, err := commands.NewReturnItemsCommand(orderID, items)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.returnItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConvertLineItems handles POST /api/v1/loan-orders/:id/convert-items.
func (s *Server) ConvertLineItems(ctx echo.Context) error {
	orderID, items, salesOrderID, err := s.bindConversion(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConvertLineItemsCommand(orderID, items, salesOrderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.convertLineItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SellReturnedItems handles POST /api/v1/loan-orders/:id/sell-returned.
func (s *Server) SellReturnedItems(ctx echo.Context) error {
	orderID, items, salesOrderID, err := s.bindConversion(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSellReturnedItemsCommand(orderID, items, salesOrderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.sellReturnedItemsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOpenLoanOrders handles GET /api/v1/loan-orders/open.
func (s *Server) GetOpenLoanOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve open loan orders",
		})
	}

	return ctx.JSON(http.StatusOK, summariesResponse(orders))
}

// GetOverdueLoanOrders handles GET /api/v1/loan-orders/overdue.
func (s *Server) GetOverdueLoanOrders(ctx echo.Context) error {
	query, err := queries.NewGetOverdueOrdersQuery(time.Now().UTC())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build overdue query",
		})
	}

	orders, err := s.getOverdueOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve overdue loan orders",
		})
	}

	return ctx.JSON(http.StatusOK, summariesResponse(orders))
}

// transition parses the order ID from the path and runs a
// parameterless status transition command.
func (s *Server) transition(ctx echo.Context, run func(orderID kernel.UUID) error) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	if err := run(orderID); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) bindConversion(
	ctx echo.Context,
) (kernel.UUID, []commands.ConversionItemInput, *kernel.UUID, error) {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return kernel.UUID{}, nil, nil, badRequest(ctx, "Invalid order ID")
	}

	var body ConversionRequest
	if err := ctx.Bind(&body); err != nil {
		return kernel.UUID{}, nil, nil, badRequest(ctx, "Invalid request body")
	}

	var salesOrderID *kernel.UUID
	if body.SalesOrderID != nil {
		id, err := kernel.UUIDFromString(*body.SalesOrderID)
		if err != nil {
			return kernel.UUID{}, nil, nil, badRequest(ctx, "Invalid sales order ID")
		}
		salesOrderID = &id
	}

	items := make([]commands.ConversionItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		lineID, err := kernel.UUIDFromString(item.LineID)
		if err != nil {
			return kernel.UUID{}, nil, nil, badRequest(ctx, "Invalid line ID")
		}

		quantity, err := kernel.NewQuantityFromString(item.Quantity)
		if err != nil {
			return kernel.UUID{}, nil, nil, badRequest(ctx, "Invalid quantity")
		}

		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return kernel.UUID{}, nil, nil, badRequest(ctx, "Invalid price")
		}

		items = append(items, commands.ConversionItemInput{
			LineID:   lineID,
			Quantity: quantity,
			Price:    price,
		})
	}

	return orderID, items, salesOrderID, nil
}

func summariesResponse(orders []queries.OrderSummaryResponse) []LoanOrderSummary {
	response := make([]LoanOrderSummary, len(orders))
	for i, order := range orders {
		response[i] = LoanOrderSummary{
			ID:         order.ID.String(),
			Reference:  order.Reference,
			BorrowerID: order.BorrowerID.String(),
			Status:     order.Status.String(),
			DueDate:    order.DueDate,
			TotalPrice: order.TotalPrice.String(),
		}
	}
	return response
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps use case failures to HTTP status codes. Validation
// failures become 400, missing aggregates 404, state conflicts 409.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrOrderIsLocked),
		errors.Is(err, errs.ErrOverAllocation):
		status = http.StatusConflict
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
