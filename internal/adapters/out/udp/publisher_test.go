package udp_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"pizzadelivery/internal/adapters/out/udp"
	"pizzadelivery/internal/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	listener, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	publisher, err := udp.NewPublisher(t.Context(), listener.LocalAddr().String(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })
	assert.Equal(t, listener.LocalAddr().String(), publisher.Target())

	msg := protocol.NewLocationBroadcast("DRV1A2B3C4D", 12, 34, "Bob", "ORD5E6F7A8B")
	require.NoError(t, publisher.Publish(t.Context(), msg))

	buf := make([]byte, 1024)
	require.NoError(t, listener.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := listener.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "UDP_LOCATION:DRV1A2B3C4D:12:34:Bob:ORD5E6F7A8B\n", string(buf[:n]))
}

func TestPublisher_PublishCancelled(t *testing.T) {
	publisher, err := udp.NewPublisher(t.Context(), "127.0.0.1:9", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = publisher.Close() })

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.Error(t, publisher.Publish(ctx, protocol.NewAccepted()))
}

func TestNewPublisher_BadAddress(t *testing.T) {
	_, err := udp.NewPublisher(t.Context(), "not an address", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
