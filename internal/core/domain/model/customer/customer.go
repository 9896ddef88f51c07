// Package customer provides the Customer aggregate. A customer is bound to
// one client connection and places at most one active order at a time.
package customer

import (
	"errors"
	"strings"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/errs"
	"pizzadelivery/internal/pkg/guard"
)

var (
	ErrNameIsRequired           = errs.NewValueIsRequiredError("name")
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
	ErrCustomerHasActiveOrder   = errors.New("You already have an active order")
	ErrCustomerHasNoActiveOrder = errors.New("customer has no active order")
)

type Customer struct {
	id            kernel.ID
	name          string
	sessionID     kernel.ID
	location      kernel.Location
	activeOrderID *kernel.ID
	ordersPlaced  int
	guard         guard.ConstructorGuard
}

// NewCustomer registers a customer at a random spot on the grid.
func NewCustomer(id kernel.ID, name string, sessionID kernel.ID) (*Customer, error) {
	return newCustomer(id, name, sessionID, kernel.NewRandomLocation())
}

// NewCustomerAt registers a customer at a known location.
func NewCustomerAt(id kernel.ID, name string, sessionID kernel.ID, location kernel.Location) (*Customer, error) {
	return newCustomer(id, name, sessionID, location)
}

func newCustomer(id kernel.ID, name string, sessionID kernel.ID, location kernel.Location) (*Customer, error) {
	c := &Customer{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSessionID(sessionID),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func RestoreCustomer(
	id kernel.ID,
	name string,
	sessionID kernel.ID,
	location kernel.Location,
	activeOrderID *kernel.ID,
	ordersPlaced int,
) (*Customer, error) {
	c, err := newCustomer(id, name, sessionID, location)
	if err != nil {
		return nil, err
	}
	if ordersPlaced < 0 {
		return nil, errs.NewValueIsOutOfRangeError("orders placed", ordersPlaced, 0, "+inf")
	}

	c.ordersPlaced = ordersPlaced
	if activeOrderID != nil {
		o := *activeOrderID
		c.activeOrderID = &o
	}
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.ID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) SessionID() kernel.ID {
	return c.sessionID
}

func (c *Customer) Location() kernel.Location {
	return c.location
}

func (c *Customer) OrdersPlaced() int {
	return c.ordersPlaced
}

// ActiveOrderID returns the undelivered order, nil if there is none.
func (c *Customer) ActiveOrderID() *kernel.ID {
	if c.activeOrderID == nil {
		return nil
	}
	o := *c.activeOrderID
	return &o
}

func (c *Customer) HasActiveOrder() bool {
	return c.activeOrderID != nil
}

// PlaceOrder records a new active order.
func (c *Customer) PlaceOrder(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if c.activeOrderID != nil {
		return ErrCustomerHasActiveOrder
	}

	o := orderID
	c.activeOrderID = &o
	c.ordersPlaced++
	return nil
}

// CompleteOrder clears the active order once it is delivered.
func (c *Customer) CompleteOrder(orderID kernel.ID) error {
	if c.activeOrderID == nil || !c.activeOrderID.IsEqual(orderID) {
		return ErrCustomerHasNoActiveOrder
	}
	c.activeOrderID = nil
	return nil
}

func (c *Customer) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Customer) setSessionID(sessionID kernel.ID) error {
	if err := sessionID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("session id", err)
	}
	c.sessionID = sessionID
	return nil
}

func (c *Customer) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
