package commands

import (
	"errors"
	"strings"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var (
	ErrRegisterDriverCommandIsNotConstructed = errors.New(
		"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
	)
	ErrDriverNameIsRequired = errors.New("Missing driver name")
)

// RegisterDriverCommand binds a new driver to a client connection.
//
// Example:
//
//	cmd, err := NewRegisterDriverCommand(kernel.NewID(kernel.DriverIDPrefix), sessionID, "Bob")
//	if err != nil {
//	    return err
//	}
//	d, err := handler.Handle(ctx, cmd)
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.ID
	sessionID kernel.ID
	name      string

	guard guard.ConstructorGuard
}

func NewRegisterDriverCommand(driverID kernel.ID, sessionID kernel.ID, name string) (RegisterDriverCommand, error) {
	cmd := RegisterDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setSessionID(sessionID),
		cmd.setName(name),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	return cmd, nil
}

func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) DriverID() kernel.ID {
	return c.driverID
}

func (c RegisterDriverCommand) SessionID() kernel.ID {
	return c.sessionID
}

func (c RegisterDriverCommand) Name() string {
	return c.name
}

func (c *RegisterDriverCommand) setDriverID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *RegisterDriverCommand) setSessionID(id kernel.ID) error {
	if err := validateSessionID(id); err != nil {
		return err
	}
	c.sessionID = id
	return nil
}

func (c *RegisterDriverCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrDriverNameIsRequired
	}
	c.name = name
	return nil
}
