// Package services provides domain services that span more than one
// aggregate of the pizza delivery server.
//
// The package includes:
//   - OrderDispatcher: matches an order waiting for pickup with an available
//     driver and computes the delivery estimate
package services
