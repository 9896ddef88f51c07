package jobs

import (
	"fmt"
	"log/slog"

	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/application/usecases/queries"
	"pizzadelivery/internal/core/ports"
)

// JobManager coordinates the background work of the server: the periodic
// location broadcast and the order timers.
type JobManager struct {
	locationBroadcastJob *LocationBroadcastJob
	orderTimers          *OrderTimers
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	prepare DelayRange,
	ready DelayRange,
	prepareHandler commands.PrepareOrderCommandHandler,
	readyHandler commands.MarkOrderReadyCommandHandler,
	assignHandler commands.AssignDriverCommandHandler,
	locationsHandler queries.GetActiveDriverLocationsQueryHandler,
	publisher ports.LocationPublisher,
	logger *slog.Logger,
) (*JobManager, error) {
	timers, err := NewOrderTimers(prepare, ready, prepareHandler, readyHandler, assignHandler, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create order timers: %w", err)
	}

	return &JobManager{
		locationBroadcastJob: NewLocationBroadcastJob(locationsHandler, publisher, logger),
		orderTimers:          timers,
	}, nil
}

// Scheduler exposes the order timers to the commands that start an order.
func (jm *JobManager) Scheduler() ports.OrderScheduler {
	return jm.orderTimers
}

// StartAll starts all scheduled jobs.
// The order timers need no start; they run as orders arrive.
func (jm *JobManager) StartAll() error {
	if err := jm.locationBroadcastJob.Start(); err != nil {
		return fmt.Errorf("failed to start location broadcast job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderTimers.Stop()
	jm.locationBroadcastJob.Stop()
}
