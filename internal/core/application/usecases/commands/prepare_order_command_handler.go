package commands

import (
	"context"

	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/protocol"
)

// PrepareOrderCommandHandler starts preparing an order and tells its customer.
type PrepareOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewPrepareOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) PrepareOrderCommandHandler {
	return PrepareOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h PrepareOrderCommandHandler) Handle(ctx context.Context, cmd PrepareOrderCommand) error {
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
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return notFoundAs(err, ErrOrderNotFound)
	}

	if err = o.StartPreparing(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	out := newOutbox(h.notifier)
	sessionID, ok, err := customerSession(ctx, uow.CustomerRepository(), o.CustomerID())
	if err != nil {
		return err
	}
	if ok {
		out.add(sessionID, protocol.NewStatusUpdate(o.ID().String(), protocol.StatusPreparing))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	out.flush(ctx)
	return nil
}
