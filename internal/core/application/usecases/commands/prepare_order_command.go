package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrPrepareOrderCommandIsNotConstructed = errors.New(
	"PrepareOrderCommand must be created via NewPrepareOrderCommand constructor",
)

// PrepareOrderCommand moves a Pending order into the kitchen. It is issued by
// the order timers, never by a client.
type PrepareOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewPrepareOrderCommand(orderID kernel.ID) (PrepareOrderCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return PrepareOrderCommand{}, err
	}

	return PrepareOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c PrepareOrderCommand) Validate() error {
	return c.guard.Validate(ErrPrepareOrderCommandIsNotConstructed)
}

func (c PrepareOrderCommand) OrderID() kernel.ID {
	return c.orderID
}
