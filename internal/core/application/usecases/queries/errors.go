// Package queries contains the read-only views over the server state: order
// status for a customer, counters, the live delivery fleet and the delivery
// journal.
package queries

import "errors"

var (
	ErrCustomerNotRegistered = errors.New("Please register first: REGISTER_CUSTOMER:YourName")
	ErrOrderNotFound         = errors.New("Order not found")

	// ErrOrderBelongsToAnotherCustomer keeps the wording drivers get for foreign orders.
	ErrOrderBelongsToAnotherCustomer = errors.New("This order is not assigned to you")
)
