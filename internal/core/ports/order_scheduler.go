package ports

import (
	"pizzadelivery/internal/core/domain/model/kernel"
)

// OrderScheduler drives the timed part of the order lifecycle. Scheduling
// returns immediately; the transitions run later on their own goroutine and
// are not cancelled when the customer disconnects.
type OrderScheduler interface {
	// SchedulePreparation arranges for a Pending order to start preparing and,
	// after that, to become ready for pickup.
	SchedulePreparation(orderID kernel.ID)
}
