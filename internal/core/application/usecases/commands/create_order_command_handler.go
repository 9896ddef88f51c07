package commands

import (
	"context"
	"errors"
	"time"

	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/pkg/errs"
)

// ErrDriversCannotOrder rejects ORDER sent from a driver connection.
var ErrDriversCannotOrder = errors.New("Drivers cannot place orders")

// CreateOrderCommandHandler places a Pending order for the customer on the
// calling session and hands it to the scheduler, which moves it through
// preparation in the background.
//
// Business rules:
//   - Only registered customers can order
//   - A customer has at most one active order
//   - The order records the customer position at creation time
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	scheduler  ports.OrderScheduler
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, scheduler ports.OrderScheduler) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		scheduler:  scheduler,
	}
}

// Handle stores the order and schedules its preparation.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.DriverRepository().GetBySession(ctx, cmd.SessionID())
	if err == nil {
		return nil, ErrDriversCannotOrder
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	customerRepo := uow.CustomerRepository()
	c, err := customerRepo.GetBySession(ctx, cmd.SessionID())
	if err != nil {
		return nil, notFoundAs(err, ErrCustomerNotRegistered)
	}

	o, err := order.NewOrder(cmd.OrderID(), c.ID(), cmd.PizzaType(), cmd.Address(), c.Location(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = c.PlaceOrder(o.ID()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.scheduler.SchedulePreparation(o.ID())
	return o, nil
}
