package commands

import (
	"context"
	"errors"
	"time"

	"pizzadelivery/internal/core/domain/model/customer"
	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/pkg/errs"
	"pizzadelivery/internal/protocol"
)

// CompleteDeliveryCommandHandler closes an order and scores it.
//
// Business rules:
//   - Only the assigned driver can complete, and only OutForDelivery orders
//   - The driver counts the delivery and becomes ready again
//   - The customer may order again
//   - Customer and driver both receive the satisfaction score
//   - The journal entry is written after the commit and never fails the command
//
// Draining waiting orders is left to the caller so the driver's ACCEPTED
// reply goes out before any new ASSIGN.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	journal    ports.DeliveryJournal
	now        func() time.Time
}

func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory, notifier ports.Notifier, journal ports.DeliveryJournal,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		journal:    journal,
		now:        time.Now,
	}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if err = o.Deliver(d.ID(), h.now()); err != nil {
		return err
	}

	if err = d.CompleteDelivery(o.ID()); err != nil {
		return err
	}

	score, err := o.Satisfaction()
	if err != nil {
		return err
	}

	actual, err := o.ActualSeconds()
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}

	c, err := h.releaseCustomer(ctx, uow, o)
	if err != nil {
		return err
	}

	satisfaction := protocol.NewSatisfaction(o.ID().String(), score, actual, o.EstimatedSeconds())

	out := newOutbox(h.notifier)
	if c != nil {
		out.add(c.SessionID(), protocol.NewStatusUpdate(o.ID().String(), protocol.StatusDelivered))
		out.add(c.SessionID(), satisfaction)
	}
	out.add(d.SessionID(), satisfaction)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	out.flush(ctx)
	_ = h.journal.Record(ctx, deliveryRecord(o, d, score, actual))
	return nil
}

// releaseCustomer clears the active order of the customer, if still connected.
func (h CompleteDeliveryCommandHandler) releaseCustomer(ctx context.Context, uow UoW, o *order.Order) (*customer.Customer, error) {
	repo := uow.CustomerRepository()

	c, err := repo.Get(ctx, o.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err = c.CompleteOrder(o.ID()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func deliveryRecord(o *order.Order, d *driver.Driver, score int, actual int) ports.DeliveryRecord {
	rec := ports.DeliveryRecord{
		OrderID:          o.ID().String(),
		CustomerID:       o.CustomerID().String(),
		DriverID:         d.ID().String(),
		DriverName:       d.Name(),
		PizzaType:        o.PizzaType().String(),
		Address:          o.Address(),
		Score:            score,
		ActualSeconds:    actual,
		EstimatedSeconds: o.EstimatedSeconds(),
		CreatedAt:        o.CreatedAt(),
	}
	if at := o.DeliveredAt(); at != nil {
		rec.DeliveredAt = *at
	}
	return rec
}
