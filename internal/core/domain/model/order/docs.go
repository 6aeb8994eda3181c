// Package order provides the Order aggregate of the pressing workflow and the
// rules that govern its lifecycle.
//
// The package includes:
//   - Status: the eight ordered stages from CREATED to DELIVERED
//   - NextStatus / CheckTransition: the role-scoped transition table
//   - Order: item lines, fixed total, history, plant assignment, payment
//   - ReferenceCode: the counter-facing P<pressing>-<YYYYMMDD>-<seq> number
//   - DomainEvent: created, status changed and paid events for the outbox
//
// Key business rules:
//   - Status only moves one stage forward, and only across the boundary the
//     acting role is responsible for (see NextStatus)
//   - The plant is attached once, when the order is received at a plant
//   - The total is computed at creation from the submitted line prices
//   - A payment can only be recorded once, after delivery, for the full total
package order
