package commands_test

import (
	"errors"
	"testing"

	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setReady(t *testing.T, w *world, sessionID kernel.ID, ready bool) error {
	t.Helper()
	cmd, err := commands.NewSetDriverReadinessCommand(sessionID, ready)
	require.NoError(t, err)
	return commands.NewSetDriverReadinessCommandHandler(w.driverUoW()).Handle(t.Context(), cmd)
}

func TestSetDriverReadinessCommandHandler_Handle(t *testing.T) {
	t.Run("toggles readiness", func(t *testing.T) {
		w := newWorld()
		d := w.addDriver(t, "Bob", 5, 5, false)

		require.NoError(t, setReady(t, w, d.SessionID(), true))
		assert.True(t, w.driver(t, d.ID()).IsAvailable())

		require.NoError(t, setReady(t, w, d.SessionID(), false))
		assert.False(t, w.driver(t, d.ID()).IsReady())
	})

	t.Run("refuses to pause during a delivery", func(t *testing.T) {
		w := newWorld()
		d := w.addDriver(t, "Bob", 5, 5, true)
		c := w.addCustomer(t, "Ann", 6, 6)
		orderID := w.assignedOrder(t, c)
		require.NoError(t, setReady(t, w, d.SessionID(), true))

		err := setReady(t, w, d.SessionID(), false)

		require.ErrorIs(t, err, driver.ErrDriverHasActiveOrder)
		after := w.driver(t, d.ID())
		assert.True(t, after.IsReady())
		assert.True(t, after.IsHandling(orderID))
	})

	t.Run("unknown session", func(t *testing.T) {
		w := newWorld()
		require.ErrorIs(t, setReady(t, w, kernel.NewID(kernel.SessionIDPrefix), true), commands.ErrDriverNotRegistered)
	})

	t.Run("customer session", func(t *testing.T) {
		w := newWorld()
		c := w.addCustomer(t, "Ann", 6, 6)
		require.ErrorIs(t, setReady(t, w, c.SessionID(), true), commands.ErrDriverNotRegistered)
	})
}

func TestSetDriverReadinessCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetDriverReadinessCommand(kernel.NewID(kernel.SessionIDPrefix), true)
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockDriverUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	err = commands.NewSetDriverReadinessCommandHandler(factory).Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertExpectations(t)
}
