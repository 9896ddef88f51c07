package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the atomic boundary around the shared state. Begin acquires
// exclusive access; Commit or Rollback releases it. Rollback undoes every
// write made since Begin, so a rejected command leaves no trace.
type UnitOfWork interface {
	// Begin blocks until exclusive access is granted.
	Begin(ctx context.Context) error

	// Commit keeps the writes and releases access.
	// Returns an error if Begin was not called.
	Commit(ctx context.Context) error

	// Rollback discards the writes and releases access.
	// Returns an error if there is nothing to roll back.
	Rollback(ctx context.Context) error

	DriverRepository() DriverRepository
	CustomerRepository() CustomerRepository
	OrderRepository() OrderRepository
}
