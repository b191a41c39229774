// Package order provides the Order aggregate for the subscription delivery
// service: a multi-day delivery purchase created from a confirmed payment.
//
// The package includes:
//   - Order: the aggregate root owning the package snapshot, the delivery
//     schedule, the address and payment sub-records
//   - Status: the commercial lifecycle (Active, Expired, Cancelled)
//   - DeliveryStatus: the fulfillment state machine
//   - DriverRef: a sum type for the optional driver assignment
//
// Key business rules:
//   - exactly one order per payment intent id (the idempotency key)
//   - the delivery schedule always matches the purchased delivery count,
//     strictly ascending, with start and end dates derived from its edges
//   - delivery lifecycle transitions are enforced by the typed methods;
//     admin overrides may bypass them but are flagged for logging
package order
