package ports

import (
	"context"
	"time"
)

// DeliveryRecord is one completed delivery as written to the journal.
type DeliveryRecord struct {
	OrderID          string
	CustomerID       string
	DriverID         string
	DriverName       string
	PizzaType        string
	Address          string
	Score            int
	ActualSeconds    int
	EstimatedSeconds int
	CreatedAt        time.Time
	DeliveredAt      time.Time
}

// DeliveryJournal appends completed deliveries to durable storage. Record
// must not block the caller on I/O; implementations log their own failures.
type DeliveryJournal interface {
	Record(ctx context.Context, rec DeliveryRecord) error
}
