// Package udp sends driver positions as datagrams to a broadcast address.
package udp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"syscall"

	"pizzadelivery/internal/protocol"

	"golang.org/x/sys/unix"
)

// Publisher implements ports.LocationPublisher over one UDP socket with
// SO_BROADCAST enabled. Each message is sent as one datagram with a trailing
// newline. Nothing is retried.
type Publisher struct {
	conn   net.PacketConn
	target *net.UDPAddr
	logger *slog.Logger
}

// NewPublisher opens the socket and resolves the target, for example
// "255.255.255.255:9051".
func NewPublisher(ctx context.Context, target string, logger *slog.Logger) (*Publisher, error) {
	addr, err := net.ResolveUDPAddr("udp4", target)
	if err != nil {
		return nil, fmt.Errorf("resolve broadcast address %q: %w", target, err)
	}

	lc := net.ListenConfig{Control: enableBroadcast}
	conn, err := lc.ListenPacket(ctx, "udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("open broadcast socket: %w", err)
	}

	return &Publisher{
		conn:   conn,
		target: addr,
		logger: logger.With("component", "udp_publisher"),
	}, nil
}

// Publish sends one datagram. The error is returned to the caller, which
// decides whether to log it.
func (p *Publisher) Publish(ctx context.Context, msg protocol.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := p.conn.WriteTo([]byte(msg.String()+"\n"), p.target); err != nil {
		return fmt.Errorf("send to %s: %w", p.target, err)
	}

	p.logger.DebugContext(ctx, "Location published", "message", msg.String())
	return nil
}

func (p *Publisher) Target() string {
	return p.target.String()
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}

func enableBroadcast(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
