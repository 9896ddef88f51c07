package commands_test

import (
	"errors"
	"testing"

	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/domain/model/customer"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrder(t *testing.T, sessionID kernel.ID, pizza string) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewID(kernel.OrderIDPrefix), sessionID, pizza, "221B Baker St")
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	w := newWorld()
	c := w.addCustomer(t, "Ann", 12, 34)
	cmd := newCreateOrder(t, c.SessionID(), "pepperoni")

	scheduler := new(MockOrderScheduler)
	scheduler.On("SchedulePreparation", cmd.OrderID()).Return().Once()

	o, err := commands.NewCreateOrderCommandHandler(w.uow(), scheduler).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, cmd.OrderID(), o.ID())
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, order.Pepperoni, o.PizzaType())
	assert.Equal(t, c.Location(), o.CustomerLocation())
	scheduler.AssertExpectations(t)

	stored := w.order(t, o.ID())
	assert.True(t, stored.CustomerID().IsEqual(c.ID()))

	after := w.customer(t, c.ID())
	assert.True(t, after.ActiveOrderID().IsEqual(o.ID()))
	assert.Equal(t, 1, after.OrdersPlaced())
}

func TestCreateOrderCommandHandler_Handle_Rejections(t *testing.T) {
	t.Run("unregistered session", func(t *testing.T) {
		w := newWorld()
		scheduler := new(MockOrderScheduler)

		_, err := commands.NewCreateOrderCommandHandler(w.uow(), scheduler).
			Handle(t.Context(), newCreateOrder(t, kernel.NewID(kernel.SessionIDPrefix), "Veggie"))

		require.ErrorIs(t, err, commands.ErrCustomerNotRegistered)
		scheduler.AssertNotCalled(t, "SchedulePreparation", mock.Anything)
	})

	t.Run("driver session", func(t *testing.T) {
		w := newWorld()
		d := w.addDriver(t, "Bob", 1, 1, true)
		scheduler := new(MockOrderScheduler)

		_, err := commands.NewCreateOrderCommandHandler(w.uow(), scheduler).
			Handle(t.Context(), newCreateOrder(t, d.SessionID(), "Veggie"))

		require.ErrorIs(t, err, commands.ErrDriversCannotOrder)
		scheduler.AssertNotCalled(t, "SchedulePreparation", mock.Anything)
	})

	t.Run("second active order", func(t *testing.T) {
		w := newWorld()
		c := w.addCustomer(t, "Ann", 1, 1)
		first := w.placeOrder(t, c)
		scheduler := new(MockOrderScheduler)

		_, err := commands.NewCreateOrderCommandHandler(w.uow(), scheduler).
			Handle(t.Context(), newCreateOrder(t, c.SessionID(), "Veggie"))

		require.ErrorIs(t, err, customer.ErrCustomerHasActiveOrder)
		scheduler.AssertNotCalled(t, "SchedulePreparation", mock.Anything)
		assert.True(t, w.customer(t, c.ID()).ActiveOrderID().IsEqual(first))
	})

	t.Run("not constructed", func(t *testing.T) {
		factory := new(MockUoWFactory)

		_, err := commands.NewCreateOrderCommandHandler(factory, new(MockOrderScheduler)).
			Handle(t.Context(), commands.CreateOrderCommand{})

		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrder(t, kernel.NewID(kernel.SessionIDPrefix), "Supreme")

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	scheduler := new(MockOrderScheduler)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	_, err := commands.NewCreateOrderCommandHandler(factory, scheduler).Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	scheduler.AssertNotCalled(t, "SchedulePreparation", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	loc, _ := kernel.NewLocation(3, 4)
	c, err := customer.NewCustomerAt(kernel.NewID(kernel.CustomerIDPrefix), "Ann", kernel.NewID(kernel.SessionIDPrefix), loc)
	require.NoError(t, err)
	cmd := newCreateOrder(t, c.SessionID(), "BBQ Chicken")

	driverRepo := new(MockDriverRepository)
	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	scheduler := new(MockOrderScheduler)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	uow.On("CustomerRepository").Return(customerRepo)
	uow.On("OrderRepository").Return(orderRepo)
	driverRepo.On("GetBySession", ctx, c.SessionID()).Return(nil, errs.NewObjectNotFoundError("session", c.SessionID())).Once()
	customerRepo.On("GetBySession", ctx, c.SessionID()).Return(c, nil).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	customerRepo.On("Update", ctx, mock.AnythingOfType("*customer.Customer")).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	_, err = commands.NewCreateOrderCommandHandler(factory, scheduler).Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	scheduler.AssertNotCalled(t, "SchedulePreparation", mock.Anything)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
}
