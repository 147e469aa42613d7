// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the loan order system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - ShipmentPlanner: A domain service that plans full shipment of an order
//     from the stock items available for each part
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
