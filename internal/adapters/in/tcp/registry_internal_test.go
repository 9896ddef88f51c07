package tcp

import (
	"bufio"
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/protocol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SlowReaderGetsQueuedLines(t *testing.T) {
	registry := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	server, client := net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})

	sessionID := kernel.NewID(kernel.SessionIDPrefix)
	registry.add(sessionID, server)

	// net.Pipe has no buffer: every Send blocks until the client reads.
	const pushes = 3
	var wg sync.WaitGroup
	errs := make(chan error, pushes)
	for range pushes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- registry.Send(t.Context(), sessionID, protocol.NewAccepted())
		}()
	}

	time.Sleep(100 * time.Millisecond)

	reader := bufio.NewReader(client)
	for range pushes {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "ACCEPTED\n", line)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_WriteTimeoutClosesConnection(t *testing.T) {
	registry := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil))).
		WithWriteTimeout(20 * time.Millisecond)
	server, client := net.Pipe()
	t.Cleanup(func() { _ = client.Close() })

	sessionID := kernel.NewID(kernel.SessionIDPrefix)
	registry.add(sessionID, server)

	err := registry.Send(t.Context(), sessionID, protocol.NewAccepted())
	require.Error(t, err)

	_, err = client.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)
}
