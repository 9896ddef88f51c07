package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAddressIsRequired is returned for an empty delivery address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")

	// ErrOrderIsAlreadyAssigned is returned when matching a driver to an order that has one.
	ErrOrderIsAlreadyAssigned = errors.New("order already has a driver")

	// ErrOrderIsNotReadyForPickup is returned when matching a driver before the kitchen is done.
	ErrOrderIsNotReadyForPickup = errors.New("order is not ready for pickup")

	// ErrOrderIsNotAssignedToDriver is returned when a driver acts on someone else's order.
	ErrOrderIsNotAssignedToDriver = errors.New("This order is not assigned to you")

	// ErrOrderIsNotPreparing is returned by StartDelivery for orders past or before Preparing.
	ErrOrderIsNotPreparing = errors.New("Order must be Preparing before going out for delivery")

	// ErrOrderIsNotOutForDelivery is returned by Deliver for orders not on the road.
	ErrOrderIsNotOutForDelivery = errors.New("Order must be OutForDelivery before marking as Delivered")

	// ErrOrderIsAlreadyDelivered is returned for any driver action on a finished order.
	ErrOrderIsAlreadyDelivered = errors.New("Order has already been delivered")

	// ErrOrderIsNotDelivered is returned when asking for delivery metrics too early.
	ErrOrderIsNotDelivered = errors.New("order is not delivered yet")
)

// Order is the aggregate root for one pizza from placement to delivery.
//
// Order follows these invariants:
//   - Status transitions only forward: Pending -> Preparing -> OutForDelivery -> Delivered
//   - A driver can only be matched while Preparing, unassigned and ready for pickup
//   - The customer location is copied at creation and never changes
//   - The estimate is 0 until a driver is matched
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id         kernel.ID
	pizzaType  PizzaType
	address    string
	customerID kernel.ID

	// customerLocation is the delivery destination, fixed at creation
	customerLocation kernel.Location

	// driverID is the matched driver (nil until assigned)
	driverID *kernel.ID

	status Status

	createdAt   time.Time
	deliveredAt *time.Time

	// estimatedSeconds is computed from the driver distance at assignment
	estimatedSeconds int

	// readyForPickup is set once the kitchen timer elapses; the order is
	// assignable from then on
	readyForPickup bool

	isConstructed bool
}

// NewOrder creates a Pending order for a customer.
//
// Example:
//
//	o, err := order.NewOrder(
//	    kernel.NewID(kernel.OrderIDPrefix),
//	    customer.ID(),
//	    order.Margherita,
//	    "221B Baker St",
//	    customer.Location(),
//	    time.Now(),
//	)
func NewOrder(
	id kernel.ID,
	customerID kernel.ID,
	pizzaType PizzaType,
	address string,
	customerLocation kernel.Location,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPizzaType(pizzaType),
		o.setAddress(address),
		o.setCustomerLocation(customerLocation),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from a stored snapshot. It validates the
// same invariants as NewOrder plus status/driver consistency.
func RestoreOrder(
	id kernel.ID,
	customerID kernel.ID,
	pizzaType PizzaType,
	address string,
	customerLocation kernel.Location,
	status Status,
	driverID *kernel.ID,
	createdAt time.Time,
	deliveredAt *time.Time,
	estimatedSeconds int,
	readyForPickup bool,
) (*Order, error) {
	o := &Order{
		createdAt:        createdAt,
		deliveredAt:      deliveredAt,
		estimatedSeconds: estimatedSeconds,
		readyForPickup:   readyForPickup,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPizzaType(pizzaType),
		o.setAddress(address),
		o.setCustomerLocation(customerLocation),
		status.Validate(),
		status.ValidateCanHaveDriver(driverID != nil),
	); err != nil {
		return nil, err
	}

	o.status = status
	if driverID != nil {
		d := *driverID
		o.driverID = &d
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.ID {
	return o.id
}

func (o *Order) PizzaType() PizzaType {
	return o.pizzaType
}

func (o *Order) Address() string {
	return o.address
}

func (o *Order) CustomerID() kernel.ID {
	return o.customerID
}

func (o *Order) CustomerLocation() kernel.Location {
	return o.customerLocation
}

// DriverID returns the matched driver, nil while unassigned.
func (o *Order) DriverID() *kernel.ID {
	if o.driverID == nil {
		return nil
	}
	d := *o.driverID
	return &d
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns the delivery timestamp, nil until Delivered.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	t := *o.deliveredAt
	return &t
}

func (o *Order) EstimatedSeconds() int {
	return o.estimatedSeconds
}

func (o *Order) IsReadyForPickup() bool {
	return o.readyForPickup
}

// IsAssignedTo reports whether driverID is the matched driver.
func (o *Order) IsAssignedTo(driverID kernel.ID) bool {
	return o.driverID != nil && o.driverID.IsEqual(driverID)
}

// IsAwaitingDriver reports whether the order sits at the assignable point
// without a driver: Preparing, ready for pickup and unassigned.
func (o *Order) IsAwaitingDriver() bool {
	return o.status == Preparing && o.readyForPickup && o.driverID == nil
}

// StartPreparing moves a Pending order into the kitchen.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkReadyForPickup flags a Preparing order as assignable. Calling it twice is harmless.
func (o *Order) MarkReadyForPickup() error {
	if o.status != Preparing {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark ready for pickup", o.status),
		)
	}
	o.readyForPickup = true
	return nil
}

// Assign matches a driver to the order and records the delivery estimate.
//
// Business rules:
//   - The order must be Preparing (see Status.ValidateAssign)
//   - The order must be ready for pickup
//   - The order must not already have a driver
//   - The estimate must not be negative
func (o *Order) Assign(driverID kernel.ID, estimatedSeconds int) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := o.ValidateAssign(); err != nil {
		return err
	}
	if estimatedSeconds < 0 {
		return errs.NewValueIsOutOfRangeError("estimated seconds", estimatedSeconds, 0, "+inf")
	}

	d := driverID
	o.driverID = &d
	o.estimatedSeconds = estimatedSeconds
	return nil
}

// ValidateAssign checks every assignment rule without changing the order.
func (o *Order) ValidateAssign() error {
	if err := o.status.ValidateAssign(); err != nil {
		return err
	}
	if o.driverID != nil {
		return ErrOrderIsAlreadyAssigned
	}
	if !o.readyForPickup {
		return ErrOrderIsNotReadyForPickup
	}
	return nil
}

// ValidateDriverAction checks that driverID may act on this order at all:
// the order is not finished and belongs to that driver.
func (o *Order) ValidateDriverAction(driverID kernel.ID) error {
	if o.status == Delivered {
		return ErrOrderIsAlreadyDelivered
	}
	if !o.IsAssignedTo(driverID) {
		return ErrOrderIsNotAssignedToDriver
	}
	return nil
}

// StartDelivery records that the matched driver left with the pizza.
//
// Example:
//
//	if err := o.StartDelivery(driver.ID()); err != nil {
//	    // ErrOrderIsNotAssignedToDriver or ErrOrderIsNotPreparing
//	}
func (o *Order) StartDelivery(driverID kernel.ID) error {
	if err := o.ValidateDriverAction(driverID); err != nil {
		return err
	}
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return fmt.Errorf("%w. Current status: %s", ErrOrderIsNotPreparing, o.status)
	}
	o.status = newStatus
	return nil
}

// Deliver completes the order at the given time.
func (o *Order) Deliver(driverID kernel.ID, at time.Time) error {
	if !o.IsAssignedTo(driverID) {
		return ErrOrderIsNotAssignedToDriver
	}
	newStatus, err := o.status.Deliver()
	if err != nil {
		return fmt.Errorf("%w. Current status: %s", ErrOrderIsNotOutForDelivery, o.status)
	}
	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

// ActualSeconds returns the whole seconds between placement and delivery.
func (o *Order) ActualSeconds() (int, error) {
	if o.status != Delivered || o.deliveredAt == nil {
		return 0, ErrOrderIsNotDelivered
	}
	return int(o.deliveredAt.Sub(o.createdAt).Seconds()), nil
}

// Satisfaction scores a delivered order with SatisfactionScore.
func (o *Order) Satisfaction() (int, error) {
	actual, err := o.ActualSeconds()
	if err != nil {
		return 0, err
	}
	return SatisfactionScore(actual, o.estimatedSeconds), nil
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setPizzaType(p PizzaType) error {
	canonical, err := ParsePizzaType(string(p))
	if err != nil {
		return err
	}
	o.pizzaType = canonical
	return nil
}

func (o *Order) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return ErrAddressIsRequired
	}
	o.address = address
	return nil
}

func (o *Order) setCustomerLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.customerLocation = location
	return nil
}
