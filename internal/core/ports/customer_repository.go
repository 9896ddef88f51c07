package ports

import (
	"context"

	"pizzadelivery/internal/core/domain/model/customer"
	"pizzadelivery/internal/core/domain/model/kernel"
)

// CustomerRepository defines the storage contract for connected customers.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error
	Remove(ctx context.Context, id kernel.ID) error
	Get(ctx context.Context, id kernel.ID) (*customer.Customer, error)
	GetBySession(ctx context.Context, sessionID kernel.ID) (*customer.Customer, error)
	Count(ctx context.Context) (int, error)
}
