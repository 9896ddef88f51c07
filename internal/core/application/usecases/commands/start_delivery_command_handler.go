package commands

import (
	"context"

	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/protocol"
)

// StartDeliveryCommandHandler moves the order out of the kitchen and gives
// the customer the distance and the estimate that was fixed at assignment.
type StartDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewStartDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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

	if err = o.StartDelivery(d.ID()); err != nil {
		return err
	}

	distance, err := d.Location().Distance(o.CustomerLocation())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	out := newOutbox(h.notifier)
	sessionID, ok, err := customerSession(ctx, uow.CustomerRepository(), o.CustomerID())
	if err != nil {
		return err
	}
	if ok {
		loc := d.Location()
		status := protocol.OutForDeliveryStatus(d.Name(), int(loc.X()), int(loc.Y()), distance)
		out.add(sessionID, protocol.NewStatusUpdate(o.ID().String(), status))
		out.add(sessionID, protocol.NewEstimated(o.ID().String(), o.EstimatedSeconds()))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	out.flush(ctx)
	return nil
}
