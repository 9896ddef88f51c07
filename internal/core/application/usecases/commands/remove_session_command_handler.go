package commands

import (
	"context"
	"errors"

	"pizzadelivery/internal/pkg/errs"
)

// RemovedEntity tells what a RemoveSessionCommand deleted.
type RemovedEntity struct {
	ID   string
	Name string
	// Kind is "driver", "customer" or empty when the session never registered.
	Kind string
}

// RemoveSessionCommandHandler deletes the driver or customer bound to a
// session. Their active order is left as it is: an assigned order stays
// assigned and its timers keep running.
type RemoveSessionCommandHandler struct {
	uowFactory UoWFactory
}

func NewRemoveSessionCommandHandler(uowFactory UoWFactory) RemoveSessionCommandHandler {
	return RemoveSessionCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RemoveSessionCommandHandler) Handle(ctx context.Context, cmd RemoveSessionCommand) (RemovedEntity, error) {
	if err := cmd.Validate(); err != nil {
		return RemovedEntity{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RemovedEntity{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var removed RemovedEntity

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.GetBySession(ctx, cmd.SessionID())
	switch {
	case err == nil:
		if err = driverRepo.Remove(ctx, d.ID()); err != nil {
			return RemovedEntity{}, err
		}
		removed = RemovedEntity{ID: d.ID().String(), Name: d.Name(), Kind: "driver"}
	case !errors.Is(err, errs.ErrObjectNotFound):
		return RemovedEntity{}, err
	}

	customerRepo := uow.CustomerRepository()
	c, err := customerRepo.GetBySession(ctx, cmd.SessionID())
	switch {
	case err == nil:
		if err = customerRepo.Remove(ctx, c.ID()); err != nil {
			return RemovedEntity{}, err
		}
		removed = RemovedEntity{ID: c.ID().String(), Name: c.Name(), Kind: "customer"}
	case !errors.Is(err, errs.ErrObjectNotFound):
		return RemovedEntity{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RemovedEntity{}, err
	}

	return removed, nil
}
