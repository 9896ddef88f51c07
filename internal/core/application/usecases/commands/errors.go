package commands

import (
	"errors"
	"fmt"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/errs"
)

// Errors shared by the session-bound commands. Their texts are sent to the
// client as the reason of an ERROR reply.
var (
	ErrDriverNotRegistered   = errors.New("Not registered as driver")
	ErrCustomerNotRegistered = errors.New("Please register first: REGISTER_CUSTOMER:YourName")
	ErrOrderNotFound         = errors.New("Order not found")
	ErrSessionIDIsRequired   = errs.NewValueIsRequiredError("session id")
	ErrOrderIDIsRequired     = errors.New("Missing order ID")
)

// notFoundAs replaces a repository "not found" error with a caller-facing one.
func notFoundAs(err error, replacement error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return replacement
	}
	return err
}

func validateSessionID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionIDIsRequired, err)
	}
	return nil
}

func validateOrderID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return ErrOrderIDIsRequired
	}
	return nil
}
