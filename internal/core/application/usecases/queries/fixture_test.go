package queries_test

import (
	"testing"
	"time"

	"pizzadelivery/internal/adapters/out/memory"
	"pizzadelivery/internal/core/domain/model/branch"
	"pizzadelivery/internal/core/domain/model/customer"
	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/core/ports"

	"github.com/stretchr/testify/require"
)

type state struct {
	factory *memory.UnitOfWorkFactory
}

func newState() state {
	return state{factory: memory.NewUnitOfWorkFactory(memory.NewStore())}
}

func (s state) write(t *testing.T, fn func(uow ports.UnitOfWork)) {
	t.Helper()
	uow := s.factory.Create()
	require.NoError(t, uow.Begin(t.Context()))
	fn(uow)
	require.NoError(t, uow.Commit(t.Context()))
}

func (s state) addCustomer(t *testing.T, x, y kernel.Coordinate) *customer.Customer {
	t.Helper()
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)
	c, err := customer.NewCustomerAt(kernel.NewID(kernel.CustomerIDPrefix), "Ann", kernel.NewID(kernel.SessionIDPrefix), loc)
	require.NoError(t, err)
	s.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.CustomerRepository().Add(t.Context(), c))
	})
	return c
}

func (s state) addDriver(t *testing.T, name string, x, y kernel.Coordinate, ready bool) *driver.Driver {
	t.Helper()
	home, err := branch.ByID("BR02")
	require.NoError(t, err)
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)
	d, err := driver.RestoreDriver(
		kernel.NewID(kernel.DriverIDPrefix), name, kernel.NewID(kernel.SessionIDPrefix),
		home, loc, ready, nil, 0, false,
	)
	require.NoError(t, err)
	s.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.DriverRepository().Add(t.Context(), d))
	})
	return d
}

// addOrder stores an order for c advanced to the given status. Orders past
// Pending are assigned to d, which then holds them unless delivered.
func (s state) addOrder(t *testing.T, c *customer.Customer, d *driver.Driver, status order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewID(kernel.OrderIDPrefix), c.ID(), order.Supreme, "1 Main St", c.Location(), time.Now())
	require.NoError(t, err)

	if status >= order.Preparing {
		require.NoError(t, o.StartPreparing())
	}
	if status >= order.OutForDelivery {
		require.NoError(t, o.MarkReadyForPickup())
		require.NoError(t, o.Assign(d.ID(), 10))
		require.NoError(t, d.TakeOrder(o.ID()))
		require.NoError(t, o.StartDelivery(d.ID()))
	}
	if status == order.Delivered {
		require.NoError(t, o.Deliver(d.ID(), time.Now()))
		require.NoError(t, d.CompleteDelivery(o.ID()))
	}

	s.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(t.Context(), o))
		if d != nil && status >= order.OutForDelivery {
			require.NoError(t, uow.DriverRepository().Update(t.Context(), d))
		}
	})
	return o
}
