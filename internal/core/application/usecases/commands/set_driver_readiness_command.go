package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrSetDriverReadinessCommandIsNotConstructed = errors.New(
	"SetDriverReadinessCommand must be created via NewSetDriverReadinessCommand constructor",
)

// SetDriverReadinessCommand is READY or NOTREADY from a driver connection.
type SetDriverReadinessCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.ID
	ready     bool

	guard guard.ConstructorGuard
}

func NewSetDriverReadinessCommand(sessionID kernel.ID, ready bool) (SetDriverReadinessCommand, error) {
	if err := validateSessionID(sessionID); err != nil {
		return SetDriverReadinessCommand{}, err
	}

	return SetDriverReadinessCommand{
		sessionID: sessionID,
		ready:     ready,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverReadinessCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverReadinessCommandIsNotConstructed)
}

func (c SetDriverReadinessCommand) SessionID() kernel.ID {
	return c.sessionID
}

func (c SetDriverReadinessCommand) Ready() bool {
	return c.ready
}
