// Package ports defines the contracts between the core of the pizza delivery
// server and its adapters: repositories and the unit of work over the shared
// state, and the outbound channels the order lifecycle talks through.
package ports

import (
	"context"

	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/kernel"
)

// DriverRepository defines the storage contract for connected drivers.
// Every method must be called inside an active unit of work; returned
// aggregates are detached copies and must be passed to Update to persist
// changes.
type DriverRepository interface {
	// Add stores a newly registered driver and indexes it by session.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update stores changes to an existing driver.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Remove deletes the driver and its session index entry.
	Remove(ctx context.Context, id kernel.ID) error

	// Get returns the driver or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*driver.Driver, error)

	// GetBySession resolves the driver registered on a connection.
	GetBySession(ctx context.Context, sessionID kernel.ID) (*driver.Driver, error)

	// GetAllAvailable returns every driver that is ready and idle.
	//
	// Example:
	//   drivers, err := repo.GetAllAvailable(ctx)
	//   if err != nil {
	//       return err
	//   }
	//   best, err := services.NewOrderDispatcher().Dispatch(o, drivers)
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)

	// GetAllDelivering returns every driver holding an active order.
	GetAllDelivering(ctx context.Context) ([]*driver.Driver, error)

	// Count returns the number of connected drivers.
	Count(ctx context.Context) (int, error)
}
