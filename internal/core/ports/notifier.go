package ports

import (
	"context"
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/protocol"
)

// ErrSessionNotFound is returned by Notifier when the target connection is gone.
var ErrSessionNotFound = errors.New("session not found")

// Notifier pushes a server message to a connected client. It is safe to call
// from any goroutine; messages to the same session are never interleaved.
// Failed pushes are not retried.
type Notifier interface {
	Send(ctx context.Context, sessionID kernel.ID, msg protocol.Message) error
}

// LocationPublisher fans a driver position out to every listener.
// Delivery is best effort.
type LocationPublisher interface {
	Publish(ctx context.Context, msg protocol.Message) error
}
