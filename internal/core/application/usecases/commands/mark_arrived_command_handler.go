package commands

import (
	"context"

	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/protocol"
)

// MarkArrivedCommandHandler snaps the driver to the reported position and
// tells the customer. The order status does not change.
type MarkArrivedCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewMarkArrivedCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) MarkArrivedCommandHandler {
	return MarkArrivedCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h MarkArrivedCommandHandler) Handle(ctx context.Context, cmd MarkArrivedCommand) error {
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

	d, o, err := driverAndOrder(ctx, uow, cmd.SessionID(), cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.ValidateDriverAction(d.ID()); err != nil {
		return err
	}

	if err = d.ArriveAt(o.ID(), cmd.Location()); err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	out := newOutbox(h.notifier)
	sessionID, ok, err := customerSession(ctx, uow.CustomerRepository(), o.CustomerID())
	if err != nil {
		return err
	}
	if ok {
		loc := d.Location()
		out.add(sessionID, protocol.NewDriverArrived(o.ID().String(), d.Name(), int(loc.X()), int(loc.Y())))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	out.flush(ctx)
	return nil
}
