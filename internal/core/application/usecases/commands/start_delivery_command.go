package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

// StartDeliveryCommand is OUTFORDELIVERY: the assigned driver leaves with the pizza.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.ID
	orderID   kernel.ID

	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(sessionID kernel.ID, orderID kernel.ID) (StartDeliveryCommand, error) {
	if err := errors.Join(validateSessionID(sessionID), validateOrderID(orderID)); err != nil {
		return StartDeliveryCommand{}, err
	}

	return StartDeliveryCommand{
		sessionID: sessionID,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

func (c StartDeliveryCommand) SessionID() kernel.ID {
	return c.sessionID
}

func (c StartDeliveryCommand) OrderID() kernel.ID {
	return c.orderID
}
