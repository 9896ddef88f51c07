package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrRemoveSessionCommandIsNotConstructed = errors.New(
	"RemoveSessionCommand must be created via NewRemoveSessionCommand constructor",
)

// RemoveSessionCommand forgets whoever was registered on a closed connection.
type RemoveSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.ID

	guard guard.ConstructorGuard
}

func NewRemoveSessionCommand(sessionID kernel.ID) (RemoveSessionCommand, error) {
	if err := validateSessionID(sessionID); err != nil {
		return RemoveSessionCommand{}, err
	}

	return RemoveSessionCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveSessionCommand) Validate() error {
	return c.guard.Validate(ErrRemoveSessionCommandIsNotConstructed)
}

func (c RemoveSessionCommand) SessionID() kernel.ID {
	return c.sessionID
}
