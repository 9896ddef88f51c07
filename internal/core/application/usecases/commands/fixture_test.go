package commands_test

import (
	"context"
	"sync"
	"testing"

	"pizzadelivery/internal/adapters/out/memory"
	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/domain/model/branch"
	"pizzadelivery/internal/core/domain/model/customer"
	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/protocol"

	"github.com/stretchr/testify/require"
)

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW {
	return f()
}

type funcDriverUoWFactory func() commands.DriverUoW

func (f funcDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type funcCustomerUoWFactory func() commands.CustomerUoW

func (f funcCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type sent struct {
	sessionID kernel.ID
	line      string
}

// recordingNotifier keeps every pushed line in order.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sent
}

func (n *recordingNotifier) Send(_ context.Context, sessionID kernel.ID, msg protocol.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sent{sessionID: sessionID, line: msg.String()})
	return nil
}

func (n *recordingNotifier) linesTo(sessionID kernel.ID) []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	var lines []string
	for _, s := range n.sent {
		if s.sessionID.IsEqual(sessionID) {
			lines = append(lines, s.line)
		}
	}
	return lines
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, ports.DeliveryRecord) error {
	return nil
}

// world is an in-memory store with the handlers wired over it.
type world struct {
	factory  *memory.UnitOfWorkFactory
	notifier *recordingNotifier
}

func newWorld() *world {
	return &world{
		factory:  memory.NewUnitOfWorkFactory(memory.NewStore()),
		notifier: &recordingNotifier{},
	}
}

func (w *world) uow() commands.UoWFactory {
	return funcUoWFactory(func() commands.UoW { return w.factory.Create() })
}

func (w *world) driverUoW() commands.DriverUoWFactory {
	return funcDriverUoWFactory(func() commands.DriverUoW { return w.factory.Create() })
}

func (w *world) customerUoW() commands.CustomerUoWFactory {
	return funcCustomerUoWFactory(func() commands.CustomerUoW { return w.factory.Create() })
}

func (w *world) inTx(t *testing.T, fn func(uow ports.UnitOfWork)) {
	t.Helper()
	uow := w.factory.Create()
	require.NoError(t, uow.Begin(t.Context()))
	fn(uow)
	require.NoError(t, uow.Commit(t.Context()))
}

func (w *world) addDriver(t *testing.T, name string, x, y kernel.Coordinate, ready bool) *driver.Driver {
	t.Helper()
	home, err := branch.ByID("BR01")
	require.NoError(t, err)
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)

	d, err := driver.RestoreDriver(
		kernel.NewID(kernel.DriverIDPrefix), name, kernel.NewID(kernel.SessionIDPrefix),
		home, loc, ready, nil, 0, false,
	)
	require.NoError(t, err)

	w.inTx(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.DriverRepository().Add(t.Context(), d))
	})
	return d
}

func (w *world) addCustomer(t *testing.T, name string, x, y kernel.Coordinate) *customer.Customer {
	t.Helper()
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)

	c, err := customer.NewCustomerAt(kernel.NewID(kernel.CustomerIDPrefix), name, kernel.NewID(kernel.SessionIDPrefix), loc)
	require.NoError(t, err)

	w.inTx(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.CustomerRepository().Add(t.Context(), c))
	})
	return c
}

// placeOrder runs CreateOrder for the customer and returns the order id.
func (w *world) placeOrder(t *testing.T, c *customer.Customer) kernel.ID {
	t.Helper()
	scheduler := new(MockOrderScheduler)
	scheduler.On("SchedulePreparation", mockAnyID).Return()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewID(kernel.OrderIDPrefix), c.SessionID(), "Margherita", "221B Baker St")
	require.NoError(t, err)

	o, err := commands.NewCreateOrderCommandHandler(w.uow(), scheduler).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o.ID()
}

func (w *world) prepare(t *testing.T, orderID kernel.ID) {
	t.Helper()
	cmd, err := commands.NewPrepareOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, commands.NewPrepareOrderCommandHandler(w.uow(), w.notifier).Handle(t.Context(), cmd))
}

func (w *world) markReady(t *testing.T, orderID kernel.ID) {
	t.Helper()
	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, commands.NewMarkOrderReadyCommandHandler(w.uow(), w.notifier).Handle(t.Context(), cmd))
}

func (w *world) assign(t *testing.T, orderID kernel.ID) error {
	t.Helper()
	cmd, err := commands.NewAssignDriverCommand(orderID)
	require.NoError(t, err)
	return commands.NewAssignDriverCommandHandler(w.uow(), w.notifier).Handle(t.Context(), cmd)
}

func (w *world) startDelivery(t *testing.T, d *driver.Driver, orderID kernel.ID) error {
	t.Helper()
	cmd, err := commands.NewStartDeliveryCommand(d.SessionID(), orderID)
	require.NoError(t, err)
	return commands.NewStartDeliveryCommandHandler(w.uow(), w.notifier).Handle(t.Context(), cmd)
}

// assignedOrder walks a fresh order up to the point where d holds it.
func (w *world) assignedOrder(t *testing.T, c *customer.Customer) kernel.ID {
	t.Helper()
	orderID := w.placeOrder(t, c)
	w.prepare(t, orderID)
	w.markReady(t, orderID)
	require.NoError(t, w.assign(t, orderID))
	return orderID
}

func (w *world) order(t *testing.T, id kernel.ID) *order.Order {
	t.Helper()
	var o *order.Order
	w.inTx(t, func(uow ports.UnitOfWork) {
		var err error
		o, err = uow.OrderRepository().Get(t.Context(), id)
		require.NoError(t, err)
	})
	return o
}

func (w *world) driver(t *testing.T, id kernel.ID) *driver.Driver {
	t.Helper()
	var d *driver.Driver
	w.inTx(t, func(uow ports.UnitOfWork) {
		var err error
		d, err = uow.DriverRepository().Get(t.Context(), id)
		require.NoError(t, err)
	})
	return d
}

func (w *world) customer(t *testing.T, id kernel.ID) *customer.Customer {
	t.Helper()
	var c *customer.Customer
	w.inTx(t, func(uow ports.UnitOfWork) {
		var err error
		c, err = uow.CustomerRepository().Get(t.Context(), id)
		require.NoError(t, err)
	})
	return c
}
