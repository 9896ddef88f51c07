package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrMarkArrivedCommandIsNotConstructed = errors.New(
	"MarkArrivedCommand must be created via NewMarkArrivedCommand constructor",
)

// MarkArrivedCommand is ARRIVED: the driver reports standing at the
// customer's door. Coordinates outside the grid are clamped.
type MarkArrivedCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.ID
	orderID   kernel.ID
	location  kernel.Location

	guard guard.ConstructorGuard
}

func NewMarkArrivedCommand(sessionID kernel.ID, orderID kernel.ID, x int, y int) (MarkArrivedCommand, error) {
	if err := errors.Join(validateSessionID(sessionID), validateOrderID(orderID)); err != nil {
		return MarkArrivedCommand{}, err
	}

	return MarkArrivedCommand{
		sessionID: sessionID,
		orderID:   orderID,
		location:  kernel.ClampLocation(x, y),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkArrivedCommand) Validate() error {
	return c.guard.Validate(ErrMarkArrivedCommandIsNotConstructed)
}

func (c MarkArrivedCommand) SessionID() kernel.ID {
	return c.sessionID
}

func (c MarkArrivedCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c MarkArrivedCommand) Location() kernel.Location {
	return c.location
}
