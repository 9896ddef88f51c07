package commands

import (
	"context"

	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
)

// driverAndOrder loads the driver on the session and the order it wants to
// act on. Ownership is left to the caller.
func driverAndOrder(ctx context.Context, uow UoW, sessionID kernel.ID, orderID kernel.ID) (*driver.Driver, *order.Order, error) {
	d, err := uow.DriverRepository().GetBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrDriverNotRegistered)
	}

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrOrderNotFound)
	}

	return d, o, nil
}
