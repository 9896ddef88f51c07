package tcp

import (
	"errors"

	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/application/usecases/queries"
	"pizzadelivery/internal/core/domain/model/customer"
	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/protocol"
)

var (
	ErrAlreadyRegistered     = errors.New("Already registered")
	ErrInvalidLocationFormat = errors.New("Invalid location format")
	ErrUnknownCommand        = errors.New("Unknown command")
)

// ProcessingError is the reason sent for failures a client cannot act on.
const ProcessingError = "Processing error"

// clientErrors are sent to the client verbatim. Anything else is logged and
// reported as ProcessingError.
var clientErrors = []error{
	protocol.ErrEmptyMessage,

	ErrAlreadyRegistered,
	ErrInvalidLocationFormat,
	ErrUnknownCommand,

	commands.ErrDriverNotRegistered,
	commands.ErrCustomerNotRegistered,
	commands.ErrOrderNotFound,
	commands.ErrOrderIDIsRequired,
	commands.ErrDriverNameIsRequired,
	commands.ErrCustomerNameIsRequired,
	commands.ErrInvalidOrderFormat,
	commands.ErrUnknownPizzaType,
	commands.ErrDriversCannotOrder,

	queries.ErrCustomerNotRegistered,
	queries.ErrOrderNotFound,
	queries.ErrOrderBelongsToAnotherCustomer,

	customer.ErrCustomerHasActiveOrder,
	driver.ErrDriverHasActiveOrder,

	order.ErrOrderIsNotAssignedToDriver,
	order.ErrOrderIsNotPreparing,
	order.ErrOrderIsNotOutForDelivery,
	order.ErrOrderIsAlreadyDelivered,
}

// reason returns the ERROR text for err and whether it is a known client error.
func reason(err error) (string, bool) {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return err.Error(), true
		}
	}
	return ProcessingError, false
}
