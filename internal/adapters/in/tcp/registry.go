package tcp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/protocol"
)

type clientConn struct {
	mu   sync.Mutex
	conn net.Conn
}

// Registry maps session ids to live connections and implements
// ports.Notifier. Session replies and pushes from other goroutines share the
// same per-connection lock, so lines never interleave.
//
// Writes carry no deadline unless WithWriteTimeout is set: pushes to a client
// that stops reading queue up behind its connection lock and go out when it
// reads again.
type Registry struct {
	mu    sync.RWMutex
	conns map[kernel.ID]*clientConn

	writeTimeout time.Duration
	logger       *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		conns:  make(map[kernel.ID]*clientConn),
		logger: logger.With("component", "session_registry"),
	}
}

// WithWriteTimeout bounds every line write; a client that does not take a
// line within d has its connection closed. Zero means no bound.
func (r *Registry) WithWriteTimeout(d time.Duration) *Registry {
	r.writeTimeout = d
	return r
}

func (r *Registry) add(sessionID kernel.ID, conn net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[sessionID] = &clientConn{conn: conn}
}

func (r *Registry) remove(sessionID kernel.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, sessionID)
}

// Count returns the number of open sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Send writes one line to the session. A missing session yields
// ports.ErrSessionNotFound. A failed write closes the connection so the
// owning session tears itself down.
func (r *Registry) Send(ctx context.Context, sessionID kernel.ID, msg protocol.Message) error {
	r.mu.RLock()
	c, ok := r.conns[sessionID]
	r.mu.RUnlock()

	if !ok {
		r.logger.DebugContext(ctx, "Dropping message for closed session",
			"session_id", sessionID.String(), "message", msg.String())
		return ports.ErrSessionNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if r.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(r.writeTimeout)); err != nil {
			return r.fail(ctx, sessionID, c, err)
		}
	}

	if _, err := c.conn.Write([]byte(msg.String() + "\n")); err != nil {
		return r.fail(ctx, sessionID, c, err)
	}

	return nil
}

func (r *Registry) fail(ctx context.Context, sessionID kernel.ID, c *clientConn, err error) error {
	r.logger.WarnContext(ctx, "Write failed, closing connection",
		"session_id", sessionID.String(), "error", err)
	_ = c.conn.Close()
	return fmt.Errorf("write to session %s: %w", sessionID, err)
}
