package order

import (
	"fmt"

	"pizzadelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a forward-only state machine:
//
//	Pending ──> Preparing ──> OutForDelivery ──> Delivered
//
// A driver is matched while the order is Preparing; Delivered is terminal.
// String values are sent to customers verbatim in STATUS_UPDATE messages.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status right after the customer ordered.
	Pending

	// Preparing means the kitchen is working on the pizza. The order becomes
	// assignable to a driver once it is also marked ready for pickup.
	Preparing

	// OutForDelivery means the assigned driver has left with the pizza.
	OutForDelivery

	// Delivered is the final state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Preparing:      "Preparing",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
	}
}

// Validate checks if the Status value is one of the four lifecycle states.
func (s Status) Validate() error {
	if s < Pending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "Unknown" for invalid values.
//
// Example:
//
//	fmt.Println(order.OutForDelivery) // Output: "OutForDelivery"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsActive reports whether an order in this status still occupies its
// customer and, once assigned, its driver.
func (s Status) IsActive() bool {
	return s == Pending || s == Preparing || s == OutForDelivery
}

// StartPreparing transitions Pending -> Preparing.
func (s Status) StartPreparing() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start preparing", s.String()),
		)
	}
	return Preparing, nil
}

// ValidateAssign checks that a driver may be matched to an order in this status.
// Only Preparing orders are assignable.
func (s Status) ValidateAssign() error {
	if s != Preparing {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// StartDelivery transitions Preparing -> OutForDelivery.
func (s Status) StartDelivery() (Status, error) {
	if s != Preparing {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start delivery", s.String()),
		)
	}
	return OutForDelivery, nil
}

// Deliver transitions OutForDelivery -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}
	return Delivered, nil
}

// ValidateCanHaveDriver checks consistency between status and driver assignment.
//
// Business Rules:
//   - Pending orders must not have a driver
//   - OutForDelivery and Delivered orders must have a driver
//   - Preparing orders may or may not have one
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !driver && (s == OutForDelivery || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}
