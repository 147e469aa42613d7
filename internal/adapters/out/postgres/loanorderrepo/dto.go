// Package loanorderrepo provides data transfer objects and mapping
// functions for loan order persistence. It implements the repository
// pattern for the loan order aggregate, converting between the domain
// model and its relational representation.
package loanorderrepo

import (
	"time"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting loan order
// aggregates. The reference is unique per installation; borrower and
// due date are indexed for the list queries.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference     string     `gorm:"uniqueIndex"`
	Description   string     ``
	BorrowerID    uuid.UUID  `gorm:"type:uuid;index"`
	ResponsibleID *uuid.UUID `gorm:"type:uuid"`
	Status        int        `gorm:"index"`
	CreationDate  time.Time
	IssueDate     *time.Time
	DueDate       *time.Time `gorm:"index"`
	ShipDate      *time.Time
	ReturnDate    *time.Time
	TotalPrice    decimal.Decimal `gorm:"type:numeric"`

	Lines      []LineItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ExtraLines []ExtraLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for loan orders.
func (OrderDTO) TableName() string {
	return "loan_orders"
}

// LineItemDTO represents one part position of a loan order with its
// quantity bookkeeping counters.
type LineItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	PartID    uuid.UUID `gorm:"type:uuid;index"`
	Reference string
	Notes     string
	Quantity  decimal.Decimal  `gorm:"type:numeric"`
	Shipped   decimal.Decimal  `gorm:"type:numeric"`
	Returned  decimal.Decimal  `gorm:"type:numeric"`
	Converted decimal.Decimal  `gorm:"type:numeric"`
	Sold      decimal.Decimal  `gorm:"type:numeric"`
	LoanPrice *decimal.Decimal `gorm:"type:numeric"`
	Status    int

	Allocations []AllocationDTO `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
	Conversions []ConversionDTO `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for loan order lines.
func (LineItemDTO) TableName() string {
	return "loan_order_lines"
}

// AllocationDTO represents the claim of a loan order line on a concrete
// stock item. Quantity is what is still out with the borrower under
// this allocation.
type AllocationDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineID            uuid.UUID `gorm:"type:uuid;index"`
	StockItemID       uuid.UUID `gorm:"type:uuid;index"`
	Quantity          decimal.Decimal `gorm:"type:numeric"`
	Returned          decimal.Decimal `gorm:"type:numeric"`
	IsConverted       bool
	SalesAllocationID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time
}

// TableName specifies the database table name for loan allocations.
func (AllocationDTO) TableName() string {
	return "loan_allocations"
}

// ConversionDTO represents one ledger entry of a loan-to-sale
// conversion on a line.
type ConversionDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineID           uuid.UUID `gorm:"type:uuid;index"`
	Quantity         decimal.Decimal `gorm:"type:numeric"`
	IsReturnedItems  bool
	Price            decimal.Decimal `gorm:"type:numeric"`
	SalesOrderLineID uuid.UUID       `gorm:"type:uuid"`
	ConvertedAt      time.Time
}

// TableName specifies the database table name for loan conversions.
func (ConversionDTO) TableName() string {
	return "loan_conversions"
}

// ExtraLineDTO represents a free-form charge on a loan order, such as a
// handling fee.
type ExtraLineDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	Reference   string
	Description string
	Quantity    decimal.Decimal `gorm:"type:numeric"`
	Price       decimal.Decimal `gorm:"type:numeric"`
	Notes       string
}

// TableName specifies the database table name for loan extra lines.
func (ExtraLineDTO) TableName() string {
	return "loan_extra_lines"
}

// fromDomain converts a loan order aggregate to its database
// representation, including all child collections.
func fromDomain(order *loanorder.Order) OrderDTO {
	dto := OrderDTO{
		ID:            order.ID().Bytes(),
		Reference:     order.Reference(),
		Description:   order.Description(),
		BorrowerID:    order.BorrowerID().Bytes(),
		ResponsibleID: uuidPtr(order.ResponsibleID()),
		Status:        int(order.Status()),
		CreationDate:  order.CreationDate(),
		IssueDate:     order.IssueDate(),
		DueDate:       order.DueDate(),
		ShipDate:      order.ShipDate(),
		ReturnDate:    order.ReturnDate(),
		TotalPrice:    order.TotalPrice(),
	}

	for _, line := range order.LineItems() {
		dto.Lines = append(dto.Lines, lineFromDomain(order.ID(), line))
	}
	for _, extra := range order.ExtraLines() {
		dto.ExtraLines = append(dto.ExtraLines, ExtraLineDTO{
			ID:          extra.ID().Bytes(),
			OrderID:     order.ID().Bytes(),
			Reference:   extra.Reference(),
			Description: extra.Description(),
			Quantity:    extra.Quantity().Decimal(),
			Price:       extra.Price(),
			Notes:       extra.Notes(),
		})
	}
	return dto
}

func lineFromDomain(orderID kernel.UUID, line *loanorder.LineItem) LineItemDTO {
	dto := LineItemDTO{
		ID:        line.ID().Bytes(),
		OrderID:   orderID.Bytes(),
		PartID:    line.PartID().Bytes(),
		Reference: line.Reference(),
		Notes:     line.Notes(),
		Quantity:  line.Quantity().Decimal(),
		Shipped:   line.Shipped().Decimal(),
		Returned:  line.Returned().Decimal(),
		Converted: line.Converted().Decimal(),
		Sold:      line.Sold().Decimal(),
		LoanPrice: line.LoanPrice(),
		Status:    int(line.Status()),
	}

	for _, allocation := range line.Allocations() {
		dto.Allocations = append(dto.Allocations, AllocationDTO{
			ID:                allocation.ID().Bytes(),
			LineID:            line.ID().Bytes(),
			StockItemID:       allocation.StockItemID().Bytes(),
			Quantity:          allocation.Quantity().Decimal(),
			Returned:          allocation.Returned().Decimal(),
			IsConverted:       allocation.IsConverted(),
			SalesAllocationID: uuidPtr(allocation.SalesAllocationID()),
			CreatedAt:         allocation.CreatedAt(),
		})
	}
	for _, conversion := range line.Conversions() {
		dto.Conversions = append(dto.Conversions, ConversionDTO{
			ID:               conversion.ID().Bytes(),
			LineID:           line.ID().Bytes(),
			Quantity:         conversion.Quantity().Decimal(),
			IsReturnedItems:  conversion.IsReturnedItems(),
			Price:            conversion.Price(),
			SalesOrderLineID: conversion.SalesOrderLineID().Bytes(),
			ConvertedAt:      conversion.ConvertedAt(),
		})
	}
	return dto
}

// toDomain converts a database DTO to a loan order aggregate,
// reconstructing lines, allocations, conversions and extra lines
// through the Restore constructors.
func toDomain(dto OrderDTO) (*loanorder.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	borrowerID, err := kernel.UUIDFromBytes(dto.BorrowerID[:])
	if err != nil {
		return nil, err
	}
	responsibleID, err := kernelUUIDPtr(dto.ResponsibleID)
	if err != nil {
		return nil, err
	}

	lines := make([]*loanorder.LineItem, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	extraLines := make([]*loanorder.ExtraLine, 0, len(dto.ExtraLines))
	for _, extraDTO := range dto.ExtraLines {
		extra, extraErr := extraLineToDomain(extraDTO)
		if extraErr != nil {
			return nil, extraErr
		}
		extraLines = append(extraLines, extra)
	}

	return loanorder.RestoreOrder(
		id,
		dto.Reference,
		borrowerID,
		responsibleID,
		dto.Description,
		loanorder.Status(dto.Status),
		dto.CreationDate,
		dto.IssueDate,
		dto.DueDate,
		dto.ShipDate,
		dto.ReturnDate,
		dto.TotalPrice,
		lines,
		extraLines,
	)
}

func lineToDomain(dto LineItemDTO) (*loanorder.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	partID, err := kernel.UUIDFromBytes(dto.PartID[:])
	if err != nil {
		return nil, err
	}

	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}
	shipped, err := kernel.NewQuantity(dto.Shipped)
	if err != nil {
		return nil, err
	}
	returned, err := kernel.NewQuantity(dto.Returned)
	if err != nil {
		return nil, err
	}
	converted, err := kernel.NewQuantity(dto.Converted)
	if err != nil {
		return nil, err
	}
	sold, err := kernel.NewQuantity(dto.Sold)
	if err != nil {
		return nil, err
	}

	allocations := make([]*loanorder.Allocation, 0, len(dto.Allocations))
	for _, allocationDTO := range dto.Allocations {
		allocation, allocationErr := allocationToDomain(allocationDTO)
		if allocationErr != nil {
			return nil, allocationErr
		}
		allocations = append(allocations, allocation)
	}

	conversions := make([]*loanorder.Conversion, 0, len(dto.Conversions))
	for _, conversionDTO := range dto.Conversions {
		conversion, conversionErr := conversionToDomain(conversionDTO)
		if conversionErr != nil {
			return nil, conversionErr
		}
		conversions = append(conversions, conversion)
	}

	return loanorder.RestoreLineItem(
		id,
		partID,
		dto.Reference,
		dto.Notes,
		quantity,
		shipped,
		returned,
		converted,
		sold,
		dto.LoanPrice,
		loanorder.LineStatus(dto.Status),
		allocations,
		conversions,
	)
}

func allocationToDomain(dto AllocationDTO) (*loanorder.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	stockItemID, err := kernel.UUIDFromBytes(dto.StockItemID[:])
	if err != nil {
		return nil, err
	}
	salesAllocationID, err := kernelUUIDPtr(dto.SalesAllocationID)
	if err != nil {
		return nil, err
	}

	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}
	returned, err := kernel.NewQuantity(dto.Returned)
	if err != nil {
		return nil, err
	}

	return loanorder.RestoreAllocation(
		id, stockItemID, quantity, returned, dto.IsConverted, salesAllocationID, dto.CreatedAt)
}

func conversionToDomain(dto ConversionDTO) (*loanorder.Conversion, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	salesOrderLineID, err := kernel.UUIDFromBytes(dto.SalesOrderLineID[:])
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}

	return loanorder.RestoreConversion(
		id, quantity, dto.IsReturnedItems, dto.Price, salesOrderLineID, dto.ConvertedAt)
}

func extraLineToDomain(dto ExtraLineDTO) (*loanorder.ExtraLine, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}

	return loanorder.RestoreExtraLine(id, dto.Reference, dto.Description, quantity, dto.Price, dto.Notes)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
