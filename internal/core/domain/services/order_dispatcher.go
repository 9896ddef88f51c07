package services

import (
	"errors"
	"math"

	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/order"
)

// ErrDriverNotFound is returned when no driver is ready and idle. For callers
// this is a wait state rather than a failure: the order stays unassigned
// until the next READY or completed delivery.
var ErrDriverNotFound = errors.New("driver not found")

// SecondsPerUnit converts grid distance into the delivery estimate.
const SecondsPerUnit = 2

// OrderDispatcher is a domain service that matches an order waiting for
// pickup with an available driver.
//
// Business rules:
//   - The order must be Preparing, ready for pickup and unassigned
//   - Only ready drivers without an active order are considered
//   - Among available drivers the one closest to the customer wins; ties keep
//     the earlier driver in the slice
//   - The estimate is round(distance(driver, customer) * 2) seconds
//   - Driver and order are bound to each other in one step
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	d, err := dispatcher.Dispatch(o, availableDrivers)
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    // tell the customer to wait
//	}
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch picks a driver for the order and binds them. On any error neither
// the order nor the drivers are modified.
func (o OrderDispatcher) Dispatch(ord *order.Order, drivers []*driver.Driver) (*driver.Driver, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	if err := ord.ValidateAssign(); err != nil {
		return nil, err
	}

	best, distance, err := o.findBestDriver(ord, drivers)
	if err != nil {
		return nil, err
	}

	if err = ord.Assign(best.ID(), EstimateSeconds(distance)); err != nil {
		return nil, err
	}

	if err = best.TakeOrder(ord.ID()); err != nil {
		return nil, err
	}

	return best, nil
}

// EstimateSeconds converts a grid distance into an estimated delivery time.
func EstimateSeconds(distance float64) int {
	return int(math.Round(distance * SecondsPerUnit))
}

func (o OrderDispatcher) findBestDriver(ord *order.Order, drivers []*driver.Driver) (*driver.Driver, float64, error) {
	var (
		best         *driver.Driver
		bestDistance = math.MaxFloat64
	)

	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, 0, err
		}

		if !d.IsAvailable() {
			continue
		}

		dist, err := d.Location().Distance(ord.CustomerLocation())
		if err != nil {
			return nil, 0, err
		}

		if dist < bestDistance {
			bestDistance = dist
			best = d
		}
	}

	if best == nil {
		return nil, 0, ErrDriverNotFound
	}

	return best, bestDistance, nil
}
