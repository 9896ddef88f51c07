package ports

import (
	"context"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
)

// OrderRepository defines the storage contract for orders. Orders are kept
// for the lifetime of the process, delivered ones included.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update stores changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// GetFirstAwaitingDriver returns some order that is ready for pickup and
	// still has no driver. No ordering is guaranteed. Returns an
	// errs.ObjectNotFoundError when nothing is waiting.
	GetFirstAwaitingDriver(ctx context.Context) (*order.Order, error)

	// GetAllUncompleted returns every order that is not yet Delivered.
	GetAllUncompleted(ctx context.Context) ([]*order.Order, error)

	// CountByStatus returns the number of orders per status.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}
