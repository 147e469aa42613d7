// Package loanorder provides domain entities and business logic for the
// loan order lifecycle. It implements the Order aggregate root together
// with its line items, stock allocations and conversion ledger.
//
// The package includes:
//   - Order: The aggregate root managing identity, lifecycle and all mutations
//   - LineItem: A requested part quantity with its shipped/returned/converted ledger
//   - Allocation: The binding of shipped quantity to a concrete stock item
//   - Conversion: An immutable ledger entry for loan-to-sale conversions
//   - ExtraLine: Free-form charges contributing to the order total
//   - Status / LineStatus: The order state machine and derived line states
//
// Key business rules:
//   - Order status changes only through the fixed transition table
//   - Quantity is conserved: shipped never exceeds requested, returns and
//     conversions never exceed what is out on loan
//   - Batch operations validate every item before mutating anything
//   - Converting to a sale never decrements allocation quantities; the
//     allocation is flagged and linked to its sales-side counterpart
//   - Overdue is derived from the due date, never stored as a status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package loanorder
