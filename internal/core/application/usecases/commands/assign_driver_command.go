package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand matches an order ready for pickup with an available
// driver. It comes in two forms: one targets the order that has just become
// ready, the other drains any waiting order after a driver frees up.
//
// Example:
//
//	cmd, _ := NewAssignDriverCommand(orderID)   // order timer
//	cmd := NewAssignWaitingOrderCommand()       // after READY or DELIVERED
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoAvailableDriver) {
//	    // customer was told to wait
//	}
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	// orderID is nil for the drain form
	orderID *kernel.ID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(orderID kernel.ID) (AssignDriverCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewAssignWaitingOrderCommand picks some order that waits for a driver.
// Which one is not specified.
func NewAssignWaitingOrderCommand() AssignDriverCommand {
	return AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the targeted order and false for the drain form.
func (c AssignDriverCommand) OrderID() (kernel.ID, bool) {
	if c.orderID == nil {
		return kernel.ID{}, false
	}
	return *c.orderID, true
}
