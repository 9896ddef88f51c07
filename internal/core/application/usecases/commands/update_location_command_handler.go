package commands

import (
	"context"
)

// UpdateLocationCommandHandler stores the reported driver position. The
// broadcaster picks it up on its next tick.
type UpdateLocationCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewUpdateLocationCommandHandler(uowFactory DriverUoWFactory) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
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

	if err = d.MoveTo(cmd.Location()); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
