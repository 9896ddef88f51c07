package commands

import (
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/guard"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

// MarkOrderReadyCommand flags a Preparing order as ready for pickup. Issued
// by the order timers once the preparation delay is over.
type MarkOrderReadyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewMarkOrderReadyCommand(orderID kernel.ID) (MarkOrderReadyCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return MarkOrderReadyCommand{}, err
	}

	return MarkOrderReadyCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

func (c MarkOrderReadyCommand) OrderID() kernel.ID {
	return c.orderID
}
