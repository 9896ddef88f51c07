package commands

import (
	"context"
	"errors"

	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/core/domain/services"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/pkg/errs"
	"pizzadelivery/internal/protocol"
)

var (
	ErrNoOrderFound      = errors.New("no order found")
	ErrNoAvailableDriver = errors.New("no available driver")
)

// AssignDriverCommandHandler runs the dispatcher and tells both parties.
//
// Business rules:
//   - Only orders that are Preparing, ready for pickup and unassigned qualify
//   - The closest ready and idle driver gets the order
//   - With no driver, the customer of a targeted order is told to wait
//   - The driver gets ASSIGN, the customer gets DRIVER_ASSIGNED; the estimate
//     is withheld until the driver leaves
//
// Example:
//
//	err := handler.Handle(ctx, NewAssignWaitingOrderCommand())
//	switch {
//	case errors.Is(err, ErrNoOrderFound):
//	    // nothing is waiting
//	case errors.Is(err, ErrNoAvailableDriver):
//	    // every driver is busy or paused
//	case err != nil:
//	    // failure
//	}
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewAssignDriverCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	o, targeted, err := h.findOrder(ctx, orderRepo, cmd)
	if err != nil {
		return err
	}

	drivers, err := driverRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	out := newOutbox(h.notifier)
	sessionID, customerConnected, err := customerSession(ctx, uow.CustomerRepository(), o.CustomerID())
	if err != nil {
		return err
	}

	assigned, err := services.NewOrderDispatcher().Dispatch(o, drivers)
	if errors.Is(err, services.ErrDriverNotFound) {
		if targeted && customerConnected {
			out.add(sessionID, protocol.NewStatusUpdate(o.ID().String(), protocol.StatusWaitingForDriver))
		}
		// nothing was written, the commit only releases the store
		if err = uow.Commit(ctx); err != nil {
			return err
		}
		out.flush(ctx)
		return ErrNoAvailableDriver
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, assigned); err != nil {
		return err
	}

	customerLoc := o.CustomerLocation()
	out.add(assigned.SessionID(), protocol.NewAssign(
		o.ID().String(), o.PizzaType().String(), o.Address(),
		int(customerLoc.X()), int(customerLoc.Y()),
	))

	if customerConnected {
		home := assigned.Branch()
		out.add(sessionID, protocol.NewDriverAssigned(
			o.ID().String(), assigned.Name(), home.ID(), home.Name(),
			int(home.Location().X()), int(home.Location().Y()),
		))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	out.flush(ctx)
	return nil
}

func (h AssignDriverCommandHandler) findOrder(
	ctx context.Context, repo ports.OrderRepository, cmd AssignDriverCommand,
) (*order.Order, bool, error) {
	orderID, targeted := cmd.OrderID()
	if !targeted {
		o, err := repo.GetFirstAwaitingDriver(ctx)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, false, ErrNoOrderFound
		}
		return o, false, err
	}

	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, true, notFoundAs(err, ErrOrderNotFound)
	}
	return o, true, nil
}
