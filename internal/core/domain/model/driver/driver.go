package driver

import (
	"errors"
	"strings"

	"pizzadelivery/internal/core/domain/model/branch"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/errs"
	"pizzadelivery/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when registering a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverHasActiveOrder is returned by NOTREADY while a delivery is in progress.
	ErrDriverHasActiveOrder = errors.New("Cannot pause while you have an active order. Complete delivery first.")
	// ErrDriverIsNotAvailable is returned when handing an order to a busy or paused driver.
	ErrDriverIsNotAvailable = errors.New("driver is not available")
	// ErrDriverHasNoActiveOrder is returned when completing or arriving without an order.
	ErrDriverHasNoActiveOrder = errors.New("driver has no active order")
)

// Driver is the aggregate root for a connected delivery driver.
//
// Key responsibilities:
//   - Tracking readiness and the single active order
//   - Tracking the grid position reported by the client
//   - Counting completed deliveries for the session
//
// Business rules:
//   - A driver holds at most one active order
//   - A driver is available only when ready and idle
//   - Taking an order clears readiness; completing it restores readiness
//   - A driver cannot pause while holding an order
//   - The home branch is fixed at registration
//
// Example usage:
//
//	home := branch.Random()
//	d, err := driver.NewDriver(kernel.NewID(kernel.DriverIDPrefix), "Bob", sessionID, home)
//	if err != nil {
//	    // Handle construction error
//	}
//	// d starts at home.Location(), not ready
type Driver struct {
	id        kernel.ID
	name      string
	sessionID kernel.ID
	branch    branch.Branch
	location  kernel.Location
	ready     bool
	// currentOrderID is nil while idle
	currentOrderID *kernel.ID
	deliveredCount int
	// arrived is set when the driver reached the customer but has not yet
	// confirmed the delivery
	arrived bool
	guard   guard.ConstructorGuard
}

// NewDriver registers a new driver at its home branch.
//
// Parameters:
//   - id: Unique identifier for the driver
//   - name: Display name (must be non-empty)
//   - sessionID: The connection the driver registered on
//   - home: The branch the driver starts from
func NewDriver(id kernel.ID, name string, sessionID kernel.ID, home branch.Branch) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setSessionID(sessionID),
		d.setBranch(home),
	); err != nil {
		return nil, err
	}

	d.location = home.Location()
	return d, nil
}

// RestoreDriver reconstructs a Driver from a stored snapshot.
//
// Examples:
//
//	d, err := RestoreDriver(id, "Bob", sessionID, home, location, true, nil, 3, false)
//	if err != nil {
//	    return fmt.Errorf("restoration failed: %w", err)
//	}
func RestoreDriver(
	id kernel.ID,
	name string,
	sessionID kernel.ID,
	home branch.Branch,
	location kernel.Location,
	ready bool,
	currentOrderID *kernel.ID,
	deliveredCount int,
	arrived bool,
) (*Driver, error) {
	d := &Driver{
		ready:          ready,
		deliveredCount: deliveredCount,
		arrived:        arrived,
		guard:          guard.NewConstructorGuard(),
	}

	var countErr error
	if deliveredCount < 0 {
		countErr = errs.NewValueIsOutOfRangeError("delivered count", deliveredCount, 0, "+inf")
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setSessionID(sessionID),
		d.setBranch(home),
		location.Validate(),
		countErr,
	); err != nil {
		return nil, err
	}

	d.location = location
	if currentOrderID != nil {
		o := *currentOrderID
		d.currentOrderID = &o
	}
	return d, nil
}

// IsEqual compares two drivers by identifier.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate ensures the driver was created through NewDriver or RestoreDriver.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

func (d *Driver) ID() kernel.ID {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) SessionID() kernel.ID {
	return d.sessionID
}

func (d *Driver) Branch() branch.Branch {
	return d.branch
}

func (d *Driver) Location() kernel.Location {
	return d.location
}

func (d *Driver) IsReady() bool {
	return d.ready
}

// CurrentOrderID returns the active order, nil while idle.
func (d *Driver) CurrentOrderID() *kernel.ID {
	if d.currentOrderID == nil {
		return nil
	}
	o := *d.currentOrderID
	return &o
}

func (d *Driver) HasActiveOrder() bool {
	return d.currentOrderID != nil
}

func (d *Driver) DeliveredCount() int {
	return d.deliveredCount
}

func (d *Driver) HasArrived() bool {
	return d.arrived
}

// IsAvailable reports whether the driver can be matched to a new order.
func (d *Driver) IsAvailable() bool {
	return d.ready && d.currentOrderID == nil
}

// GoReady marks the driver as accepting orders.
func (d *Driver) GoReady() {
	d.ready = true
}

// GoNotReady pauses the driver. It fails without changes while an order is active.
func (d *Driver) GoNotReady() error {
	if d.currentOrderID != nil {
		return ErrDriverHasActiveOrder
	}
	d.ready = false
	return nil
}

// MoveTo updates the reported position.
func (d *Driver) MoveTo(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}

// TakeOrder binds the driver to an order. The driver must be available;
// readiness is cleared until the delivery completes.
func (d *Driver) TakeOrder(orderID kernel.ID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !d.IsAvailable() {
		return ErrDriverIsNotAvailable
	}

	o := orderID
	d.currentOrderID = &o
	d.ready = false
	d.arrived = false
	return nil
}

// ArriveAt snaps the driver to the customer's door for the active order.
func (d *Driver) ArriveAt(orderID kernel.ID, location kernel.Location) error {
	if !d.IsHandling(orderID) {
		return ErrDriverHasNoActiveOrder
	}
	if err := d.MoveTo(location); err != nil {
		return err
	}
	d.arrived = true
	return nil
}

// IsHandling reports whether orderID is the driver's active order.
func (d *Driver) IsHandling(orderID kernel.ID) bool {
	return d.currentOrderID != nil && d.currentOrderID.IsEqual(orderID)
}

// CompleteDelivery releases the active order, counts the delivery and makes
// the driver ready for the next one.
func (d *Driver) CompleteDelivery(orderID kernel.ID) error {
	if !d.IsHandling(orderID) {
		return ErrDriverHasNoActiveOrder
	}

	d.currentOrderID = nil
	d.deliveredCount++
	d.ready = true
	d.arrived = false
	return nil
}

func (d *Driver) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setSessionID(sessionID kernel.ID) error {
	if err := sessionID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("session id", err)
	}
	d.sessionID = sessionID
	return nil
}

func (d *Driver) setBranch(home branch.Branch) error {
	if err := home.Validate(); err != nil {
		return err
	}
	d.branch = home
	return nil
}
