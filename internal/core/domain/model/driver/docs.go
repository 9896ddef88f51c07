// Package driver provides the Driver aggregate of the pizza delivery server.
//
// A Driver exists for as long as its client connection: it is created on
// REGISTER and removed when the session ends. It moves between three states:
//
//	paused ──GoReady──> available ──TakeOrder──> delivering
//	   ^                    │                        │
//	   └────GoNotReady──────┘<──CompleteDelivery─────┘
//
// Key business rules:
//   - At most one active order at a time
//   - Only ready, idle drivers are matched to orders
//   - Pausing is refused while an order is active
//   - Every stored position lies on the 0..50 grid
package driver
