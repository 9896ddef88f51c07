package queries

import (
	"context"

	"pizzadelivery/internal/core/ports"
)

type GetActiveDriverLocationsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetActiveDriverLocationsQueryHandler(uowFactory ports.UnitOfWorkFactory) GetActiveDriverLocationsQueryHandler {
	return GetActiveDriverLocationsQueryHandler{uowFactory: uowFactory}
}

// Handle takes the snapshot under the store lock and returns plain values, so
// callers can do slow I/O with the result after the lock is gone.
func (h GetActiveDriverLocationsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDriverLocationsQuery,
) ([]DriverLocation, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drivers, err := uow.DriverRepository().GetAllDelivering(ctx)
	if err != nil {
		return nil, err
	}

	locations := make([]DriverLocation, 0, len(drivers))
	for _, d := range drivers {
		orderID := d.CurrentOrderID()
		if orderID == nil {
			continue
		}
		loc := d.Location()
		locations = append(locations, DriverLocation{
			DriverID: d.ID().String(),
			Name:     d.Name(),
			X:        int(loc.X()),
			Y:        int(loc.Y()),
			OrderID:  orderID.String(),
			Arrived:  d.HasArrived(),
		})
	}

	return locations, nil
}
