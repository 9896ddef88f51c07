package commands_test

import (
	"errors"
	"fmt"
	"testing"

	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func readyOrder(t *testing.T, w *world, x, y kernel.Coordinate) (kernel.ID, kernel.ID) {
	t.Helper()
	c := w.addCustomer(t, "Ann", x, y)
	orderID := w.placeOrder(t, c)
	w.prepare(t, orderID)
	w.markReady(t, orderID)
	return orderID, c.SessionID()
}

func TestAssignDriverCommandHandler_Handle_Success(t *testing.T) {
	w := newWorld()
	orderID, customerSession := readyOrder(t, w, 10, 10)
	far := w.addDriver(t, "Far", 40, 40, true)
	near := w.addDriver(t, "Bob", 13, 14, true)

	require.NoError(t, w.assign(t, orderID))

	o := w.order(t, orderID)
	assert.True(t, o.IsAssignedTo(near.ID()))
	assert.Equal(t, 10, o.EstimatedSeconds())

	d := w.driver(t, near.ID())
	assert.True(t, d.IsHandling(orderID))
	assert.False(t, d.IsReady())
	assert.True(t, w.driver(t, far.ID()).IsAvailable())

	assert.Equal(t, []string{"ASSIGN:" + orderID.String() + ":Margherita:221B Baker St:10:10"}, w.notifier.linesTo(near.SessionID()))
	lines := w.notifier.linesTo(customerSession)
	require.Len(t, lines, 3)
	assert.Equal(t, "DRIVER_ASSIGNED:"+orderID.String()+":Bob:BR01:Downtown_Branch:10:10", lines[2])
}

func TestAssignDriverCommandHandler_Handle_NoDriver(t *testing.T) {
	w := newWorld()
	orderID, customerSession := readyOrder(t, w, 10, 10)
	w.addDriver(t, "Paused", 10, 10, false)

	err := w.assign(t, orderID)

	require.ErrorIs(t, err, commands.ErrNoAvailableDriver)
	assert.True(t, w.order(t, orderID).IsAwaitingDriver())
	lines := w.notifier.linesTo(customerSession)
	require.Len(t, lines, 3)
	assert.Equal(t, "STATUS_UPDATE:"+orderID.String()+":WaitingForDriver", lines[2])
}

func TestAssignDriverCommandHandler_Handle_Drain(t *testing.T) {
	t.Run("assigns a waiting order", func(t *testing.T) {
		w := newWorld()
		orderID, _ := readyOrder(t, w, 10, 10)
		require.ErrorIs(t, w.assign(t, orderID), commands.ErrNoAvailableDriver)
		d := w.addDriver(t, "Bob", 20, 20, true)

		err := commands.NewAssignDriverCommandHandler(w.uow(), w.notifier).
			Handle(t.Context(), commands.NewAssignWaitingOrderCommand())

		require.NoError(t, err)
		assert.True(t, w.order(t, orderID).IsAssignedTo(d.ID()))
		assert.Len(t, w.notifier.linesTo(d.SessionID()), 1)
	})

	t.Run("nothing waiting", func(t *testing.T) {
		w := newWorld()
		w.addDriver(t, "Bob", 20, 20, true)

		err := commands.NewAssignDriverCommandHandler(w.uow(), w.notifier).
			Handle(t.Context(), commands.NewAssignWaitingOrderCommand())

		require.ErrorIs(t, err, commands.ErrNoOrderFound)
		assert.Zero(t, w.notifier.count())
	})

	t.Run("no driver does not repeat the wait notice", func(t *testing.T) {
		w := newWorld()
		_, customerSession := readyOrder(t, w, 10, 10)

		err := commands.NewAssignDriverCommandHandler(w.uow(), w.notifier).
			Handle(t.Context(), commands.NewAssignWaitingOrderCommand())

		require.ErrorIs(t, err, commands.ErrNoAvailableDriver)
		assert.Len(t, w.notifier.linesTo(customerSession), 2)
	})

	t.Run("skips orders still in the kitchen", func(t *testing.T) {
		w := newWorld()
		c := w.addCustomer(t, "Ann", 1, 1)
		orderID := w.placeOrder(t, c)
		w.prepare(t, orderID)
		w.addDriver(t, "Bob", 20, 20, true)

		err := commands.NewAssignDriverCommandHandler(w.uow(), w.notifier).
			Handle(t.Context(), commands.NewAssignWaitingOrderCommand())

		require.ErrorIs(t, err, commands.ErrNoOrderFound)
		assert.Nil(t, w.order(t, orderID).DriverID())
	})
}

func TestAssignDriverCommandHandler_Handle_Rejections(t *testing.T) {
	t.Run("already assigned", func(t *testing.T) {
		w := newWorld()
		orderID, _ := readyOrder(t, w, 10, 10)
		w.addDriver(t, "Bob", 10, 10, true)
		other := w.addDriver(t, "Eve", 10, 11, true)
		require.NoError(t, w.assign(t, orderID))

		err := w.assign(t, orderID)

		require.ErrorIs(t, err, order.ErrOrderIsAlreadyAssigned)
		assert.True(t, w.driver(t, other.ID()).IsAvailable())
	})

	t.Run("unknown order", func(t *testing.T) {
		w := newWorld()
		require.ErrorIs(t, w.assign(t, kernel.NewID(kernel.OrderIDPrefix)), commands.ErrOrderNotFound)
	})

	t.Run("not constructed", func(t *testing.T) {
		factory := new(MockUoWFactory)
		err := commands.NewAssignDriverCommandHandler(factory, new(MockNotifier)).
			Handle(t.Context(), commands.AssignDriverCommand{})
		require.ErrorIs(t, err, commands.ErrAssignDriverCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestAssignDriverCommandHandler_Handle_UpdateDriverError(t *testing.T) {
	ctx := t.Context()
	w := newWorld()
	orderID, _ := readyOrder(t, w, 10, 10)
	o := w.order(t, orderID)
	d := w.addDriver(t, "Bob", 10, 12, true)

	driverRepo := new(MockDriverRepository)
	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetFirstAwaitingDriver", ctx).Return(o, nil).Once()
	driverRepo.On("GetAllAvailable", ctx).Return([]*driver.Driver{d}, nil).Once()
	customerRepo.On("Get", ctx, o.CustomerID()).Return(nil, errs.NewObjectNotFoundError("customer", o.CustomerID())).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(errors.New("update error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err := commands.NewAssignDriverCommandHandler(factory, notifier).Handle(ctx, commands.NewAssignWaitingOrderCommand())

	require.EqualError(t, err, "update error")
	uow.AssertNotCalled(t, "Commit", ctx)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_ConcurrentDrains(t *testing.T) {
	w := newWorld()
	orders := make([]kernel.ID, 0, 5)
	for i := range 5 {
		id, _ := readyOrder(t, w, kernel.Coordinate(i), 0)
		orders = append(orders, id)
	}
	drivers := make([]kernel.ID, 0, 3)
	for i := range 3 {
		drivers = append(drivers, w.addDriver(t, fmt.Sprintf("D%d", i), 25, 25, true).ID())
	}

	errCh := make(chan error, 5)
	for range 5 {
		go func() {
			errCh <- commands.NewAssignDriverCommandHandler(w.uow(), w.notifier).
				Handle(t.Context(), commands.NewAssignWaitingOrderCommand())
		}()
	}

	assigned := 0
	for range 5 {
		if err := <-errCh; err == nil {
			assigned++
		} else {
			require.ErrorIs(t, err, commands.ErrNoAvailableDriver)
		}
	}
	assert.Equal(t, 3, assigned)

	seen := map[string]bool{}
	for _, id := range orders {
		if driverID := w.order(t, id).DriverID(); driverID != nil {
			assert.False(t, seen[driverID.String()], "a driver holds at most one order")
			seen[driverID.String()] = true
		}
	}
	assert.Len(t, seen, 3)
	for _, id := range drivers {
		assert.True(t, w.driver(t, id).HasActiveOrder())
	}
}
