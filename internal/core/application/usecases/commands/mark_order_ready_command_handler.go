package commands

import (
	"context"

	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/protocol"
)

// MarkOrderReadyCommandHandler makes an order assignable and tells its
// customer. Assignment itself is a separate AssignDriverCommand so that the
// customer sees ReadyForPickup before any driver news.
type MarkOrderReadyCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

func NewMarkOrderReadyCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) error {
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

	if err = o.MarkReadyForPickup(); err != nil {
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
		out.add(sessionID, protocol.NewStatusUpdate(o.ID().String(), protocol.StatusReadyForPickup))
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	out.flush(ctx)
	return nil
}
