package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand is DELIVERED: the driver handed over the pizza.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.ID
	orderID   kernel.ID

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(sessionID kernel.ID, orderID kernel.ID) (CompleteDeliveryCommand, error) {
	if err := errors.Join(validateSessionID(sessionID), validateOrderID(orderID)); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		sessionID: sessionID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) SessionID() kernel.ID {
	return c.sessionID
}

func (c CompleteDeliveryCommand) OrderID() kernel.ID {
	return c.orderID
}
