// Package tcp is the inbound adapter for the line protocol: it accepts client
// connections, runs one Session per connection and pushes server-initiated
// messages to sessions through the Registry.
package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/application/usecases/queries"
)

// Handlers are the use cases a session dispatches to.
type Handlers struct {
	RegisterDriver   commands.RegisterDriverCommandHandler
	RegisterCustomer commands.RegisterCustomerCommandHandler
	CreateOrder      commands.CreateOrderCommandHandler
	SetReadiness     commands.SetDriverReadinessCommandHandler
	AssignDriver     commands.AssignDriverCommandHandler
	StartDelivery    commands.StartDeliveryCommandHandler
	MarkArrived      commands.MarkArrivedCommandHandler
	CompleteDelivery commands.CompleteDeliveryCommandHandler
	UpdateLocation   commands.UpdateLocationCommandHandler
	RemoveSession    commands.RemoveSessionCommandHandler
	OrderStatus      queries.GetOrderStatusQueryHandler
}

// Server accepts TCP clients. Accept errors are logged and the loop goes on;
// only a failure to bind is fatal.
type Server struct {
	addr     string
	handlers Handlers
	registry *Registry
	logger   *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   bool
	sessions sync.WaitGroup
}

func NewServer(addr string, handlers Handlers, registry *Registry, logger *slog.Logger) *Server {
	return &Server{
		addr:     addr,
		handlers: handlers,
		registry: registry,
		logger:   logger.With("component", "tcp_server"),
	}
}

// Listen binds the listening socket.
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Listening", "address", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until Shutdown. Sessions outlive ctx
// cancellation; they end when their client goes away.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	if ln == nil {
		return errors.New("server is not listening")
	}

	sessionCtx := context.WithoutCancel(ctx)

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			delay = acceptBackoff(delay)
			s.logger.ErrorContext(ctx, "Accept failed", "error", err, "retry_in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		session := newSession(conn, s.handlers, s.registry, s.logger)
		s.sessions.Add(1)
		go func() {
			defer s.sessions.Done()
			session.Run(sessionCtx)
		}()
	}
}

// Shutdown closes the listener. Open sessions are left running.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.listener == nil {
		return nil
	}
	s.closed = true

	s.logger.InfoContext(ctx, "Shutting down listener", "open_sessions", s.registry.Count())
	return s.listener.Close()
}

// Wait blocks until every session has ended.
func (s *Server) Wait() {
	s.sessions.Wait()
}

// Accept failures such as running out of file descriptors tend to repeat;
// the loop waits between attempts, doubling from minAcceptDelay up to
// maxAcceptDelay, and resets after the next successful accept.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

func acceptBackoff(prev time.Duration) time.Duration {
	if prev == 0 {
		return minAcceptDelay
	}
	return min(prev*2, maxAcceptDelay)
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
