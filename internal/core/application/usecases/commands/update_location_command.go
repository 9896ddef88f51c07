package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand is LOCATION from a driver. Coordinates outside the
// grid are clamped.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.ID
	location  kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateLocationCommand(sessionID kernel.ID, x int, y int) (UpdateLocationCommand, error) {
	if err := validateSessionID(sessionID); err != nil {
		return UpdateLocationCommand{}, err
	}

	return UpdateLocationCommand{
		sessionID: sessionID,
		location:  kernel.ClampLocation(x, y),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) SessionID() kernel.ID {
	return c.sessionID
}

func (c UpdateLocationCommand) Location() kernel.Location {
	return c.location
}
