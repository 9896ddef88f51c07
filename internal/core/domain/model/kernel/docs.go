// Package kernel provides core domain primitives shared by every aggregate
// of the pizza delivery server.
//
// The package includes:
//   - ID: a short, prefixed identifier ("DRV1A2B3C4D") for drivers, customers,
//     orders and sessions
//   - Location: a value object representing a point on the 0..50 city grid
//
// Both are immutable value objects, safe for concurrent use, whose zero values
// fail validation.
package kernel
