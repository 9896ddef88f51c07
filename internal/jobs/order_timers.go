package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
)

// DelayRange is a closed interval a timer delay is drawn from uniformly.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

func (r DelayRange) Validate() error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("invalid delay range [%s, %s]", r.Min, r.Max)
	}
	return nil
}

// Pick draws a delay from the range.
func (r DelayRange) Pick() time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rand.N(r.Max-r.Min+1)
}

// OrderTimers moves orders through the kitchen on one-shot timers keyed by
// order id: Pending to Preparing after the prepare delay, then ready for
// pickup after the ready delay, followed by an assignment attempt.
//
// Timers are never cancelled when a customer or driver disconnects; the
// transition runs anyway and its notification goes nowhere. Stop cancels
// whatever has not fired yet and is meant for process shutdown only.
type OrderTimers struct {
	prepare DelayRange
	ready   DelayRange

	prepareHandler commands.PrepareOrderCommandHandler
	readyHandler   commands.MarkOrderReadyCommandHandler
	assignHandler  commands.AssignDriverCommandHandler

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool

	logger *slog.Logger
}

func NewOrderTimers(
	prepare DelayRange,
	ready DelayRange,
	prepareHandler commands.PrepareOrderCommandHandler,
	readyHandler commands.MarkOrderReadyCommandHandler,
	assignHandler commands.AssignDriverCommandHandler,
	logger *slog.Logger,
) (*OrderTimers, error) {
	if err := errors.Join(prepare.Validate(), ready.Validate()); err != nil {
		return nil, err
	}

	return &OrderTimers{
		prepare:        prepare,
		ready:          ready,
		prepareHandler: prepareHandler,
		readyHandler:   readyHandler,
		assignHandler:  assignHandler,
		timers:         make(map[string]*time.Timer),
		logger:         logger.With("component", "order_timers"),
	}, nil
}

// SchedulePreparation implements ports.OrderScheduler.
func (t *OrderTimers) SchedulePreparation(orderID kernel.ID) {
	t.schedule(orderID, t.prepare.Pick(), t.runPrepare)
}

// Pending returns the number of timers that have not fired.
func (t *OrderTimers) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// Stop cancels every timer that has not fired. Later scheduling is ignored.
func (t *OrderTimers) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	t.stopped = true
}

func (t *OrderTimers) schedule(orderID kernel.ID, delay time.Duration, run func(context.Context, kernel.ID)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	key := orderID.String()
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		t.mu.Lock()
		if t.timers[key] != timer {
			t.mu.Unlock()
			return
		}
		delete(t.timers, key)
		t.mu.Unlock()

		run(context.Background(), orderID)
	})
	t.timers[key] = timer
}

func (t *OrderTimers) runPrepare(ctx context.Context, orderID kernel.ID) {
	cmd, err := commands.NewPrepareOrderCommand(orderID)
	if err != nil {
		t.logger.ErrorContext(ctx, "Invalid prepare command", "order_id", orderID.String(), "error", err)
		return
	}

	if err = t.prepareHandler.Handle(ctx, cmd); err != nil {
		t.logger.ErrorContext(ctx, "Failed to start preparing order", "order_id", orderID.String(), "error", err)
		return
	}

	t.logger.InfoContext(ctx, "Order is being prepared", "order_id", orderID.String())
	t.schedule(orderID, t.ready.Pick(), t.runReady)
}

func (t *OrderTimers) runReady(ctx context.Context, orderID kernel.ID) {
	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	if err != nil {
		t.logger.ErrorContext(ctx, "Invalid ready command", "order_id", orderID.String(), "error", err)
		return
	}

	if err = t.readyHandler.Handle(ctx, cmd); err != nil {
		t.logger.ErrorContext(ctx, "Failed to mark order ready", "order_id", orderID.String(), "error", err)
		return
	}

	t.logger.InfoContext(ctx, "Order is ready for pickup", "order_id", orderID.String())
	t.assign(ctx, orderID)
}

func (t *OrderTimers) assign(ctx context.Context, orderID kernel.ID) {
	cmd, err := commands.NewAssignDriverCommand(orderID)
	if err != nil {
		t.logger.ErrorContext(ctx, "Invalid assign command", "order_id", orderID.String(), "error", err)
		return
	}

	err = t.assignHandler.Handle(ctx, cmd)
	switch {
	case err == nil:
		t.logger.InfoContext(ctx, "Driver assigned", "order_id", orderID.String())
	case errors.Is(err, commands.ErrNoAvailableDriver):
		t.logger.InfoContext(ctx, "No driver available, order is waiting", "order_id", orderID.String())
	case errors.Is(err, order.ErrOrderIsAlreadyAssigned):
		// a drain got there first
	default:
		t.logger.ErrorContext(ctx, "Failed to assign driver", "order_id", orderID.String(), "error", err)
	}
}
