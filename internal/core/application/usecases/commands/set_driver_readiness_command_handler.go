package commands

import (
	"context"
)

// SetDriverReadinessCommandHandler toggles the readiness flag. NOTREADY is
// rejected while the driver holds an order and nothing changes.
type SetDriverReadinessCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewSetDriverReadinessCommandHandler(uowFactory DriverUoWFactory) SetDriverReadinessCommandHandler {
	return SetDriverReadinessCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SetDriverReadinessCommandHandler) Handle(ctx context.Context, cmd SetDriverReadinessCommand) error {
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

	repo := uow.DriverRepository()
	d, err := repo.GetBySession(ctx, cmd.SessionID())
	if err != nil {
		return notFoundAs(err, ErrDriverNotRegistered)
	}

	if cmd.Ready() {
		d.GoReady()
	} else if err = d.GoNotReady(); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
