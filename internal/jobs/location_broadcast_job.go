package jobs

import (
	"context"
	"log/slog"

	"pizzadelivery/internal/core/application/usecases/queries"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/protocol"

	"github.com/robfig/cron/v3"
)

// BroadcastSpec is the cron schedule of the location broadcast.
const BroadcastSpec = "@every 2s"

// LocationBroadcastJob publishes the position of every driver that holds an
// order. Delivery is best effort: a failed datagram is logged and the rest of
// the tick goes on.
type LocationBroadcastJob struct {
	handler   queries.GetActiveDriverLocationsQueryHandler
	publisher ports.LocationPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewLocationBroadcastJob(
	handler queries.GetActiveDriverLocationsQueryHandler,
	publisher ports.LocationPublisher,
	logger *slog.Logger,
) *LocationBroadcastJob {
	return &LocationBroadcastJob{
		handler:   handler,
		publisher: publisher,
		cron:      cron.New(),
		logger:    logger.With("component", "location_broadcast_job"),
	}
}

// Start begins the broadcast on BroadcastSpec.
func (j *LocationBroadcastJob) Start() error {
	_, err := j.cron.AddFunc(BroadcastSpec, func() {
		j.Broadcast(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location broadcast job started", "schedule", BroadcastSpec)
	return nil
}

// Broadcast runs one tick. The driver snapshot is taken first, so no
// datagram is sent while the store is locked.
func (j *LocationBroadcastJob) Broadcast(ctx context.Context) int {
	locations, err := j.handler.Handle(ctx, queries.NewGetActiveDriverLocationsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Location broadcast job failed", "error", err)
		return 0
	}

	sent := 0
	for _, l := range locations {
		msg := protocol.NewLocationBroadcast(l.DriverID, l.X, l.Y, l.Name, l.OrderID)
		if err = j.publisher.Publish(ctx, msg); err != nil {
			j.logger.WarnContext(ctx, "Location broadcast failed", "driver_id", l.DriverID, "error", err)
			continue
		}
		sent++
	}

	return sent
}

// Stop stops the schedule and waits for a running tick to finish.
func (j *LocationBroadcastJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Location broadcast job stopped")
}
