// Package order provides the Order aggregate of the pizza delivery server.
//
// The package includes:
//   - Order: the aggregate root tracking one pizza from placement to delivery
//   - Status: a forward-only state machine Pending -> Preparing -> OutForDelivery -> Delivered
//   - PizzaType: the fixed menu with tolerant parsing
//   - SatisfactionScore: the 1..5 rating of a finished delivery
//
// Key business rules:
//   - Status never skips or reverses a step
//   - A driver is matched only while Preparing, after the kitchen marked the
//     order ready for pickup, and only once
//   - Only the matched driver may start, arrive at or complete the delivery
//   - The customer position is copied at creation and never changes
package order
