package commands

import (
	"errors"
	"strings"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var (
	ErrRegisterCustomerCommandIsNotConstructed = errors.New(
		"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("Missing customer name")
)

// RegisterCustomerCommand binds a new customer to a client connection.
type RegisterCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.ID
	sessionID  kernel.ID
	name       string

	guard guard.ConstructorGuard
}

func NewRegisterCustomerCommand(customerID kernel.ID, sessionID kernel.ID, name string) (RegisterCustomerCommand, error) {
	cmd := RegisterCustomerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setSessionID(sessionID),
		cmd.setName(name),
	); err != nil {
		return RegisterCustomerCommand{}, err
	}

	return cmd, nil
}

func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

func (c RegisterCustomerCommand) CustomerID() kernel.ID {
	return c.customerID
}

func (c RegisterCustomerCommand) SessionID() kernel.ID {
	return c.sessionID
}

func (c RegisterCustomerCommand) Name() string {
	return c.name
}

func (c *RegisterCustomerCommand) setCustomerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *RegisterCustomerCommand) setSessionID(id kernel.ID) error {
	if err := validateSessionID(id); err != nil {
		return err
	}
	c.sessionID = id
	return nil
}

func (c *RegisterCustomerCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	c.name = name
	return nil
}
