package commands

import (
	"errors"
	"fmt"
	"strings"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrInvalidOrderFormat = errors.New("Invalid order format (need: ORDER:PizzaType:Address)")
	ErrUnknownPizzaType   = errors.New("Unknown pizza type")
)

// CreateOrderCommand represents a customer placing an order.
// The pizza type is checked against the menu and stored in canonical form.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewID(kernel.OrderIDPrefix), sessionID, "margherita", "221B Baker St")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created, preparation starts in a few seconds", o.ID())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.ID
	sessionID kernel.ID
	pizzaType order.PizzaType
	address   string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(orderID kernel.ID, sessionID kernel.ID, pizzaType string, address string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(pizzaType) == "" || strings.TrimSpace(address) == "" {
		return CreateOrderCommand{}, ErrInvalidOrderFormat
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSessionID(sessionID),
		cmd.setPizzaType(pizzaType),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.address = strings.TrimSpace(address)
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c CreateOrderCommand) SessionID() kernel.ID {
	return c.sessionID
}

func (c CreateOrderCommand) PizzaType() order.PizzaType {
	return c.pizzaType
}

func (c CreateOrderCommand) Address() string {
	return c.address
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setSessionID(id kernel.ID) error {
	if err := validateSessionID(id); err != nil {
		return err
	}
	c.sessionID = id
	return nil
}

func (c *CreateOrderCommand) setPizzaType(pizzaType string) error {
	p, err := order.ParsePizzaType(pizzaType)
	if err != nil {
		return fmt.Errorf("%w %q. Menu: %s", ErrUnknownPizzaType, strings.TrimSpace(pizzaType), menuList())
	}
	c.pizzaType = p
	return nil
}

func menuList() string {
	menu := order.Menu()
	names := make([]string, 0, len(menu))
	for _, p := range menu {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}
