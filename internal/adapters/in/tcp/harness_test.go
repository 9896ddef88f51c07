package tcp_test

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"pizzadelivery/internal/adapters/in/tcp"
	"pizzadelivery/internal/adapters/out/memory"
	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/application/usecases/queries"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/jobs"

	"github.com/stretchr/testify/require"
)

const readTimeout = 3 * time.Second

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW {
	return f()
}

type funcDriverUoWFactory func() commands.DriverUoW

func (f funcDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type funcCustomerUoWFactory func() commands.CustomerUoW

func (f funcCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, ports.DeliveryRecord) error {
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	fastKitchen = jobs.DelayRange{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	slowKitchen = jobs.DelayRange{Min: time.Hour, Max: time.Hour}
)

// harness runs a server on a loopback port over a fresh in-memory store.
type harness struct {
	server   *tcp.Server
	registry *tcp.Registry
	stats    queries.GetStatsQueryHandler
}

func newHarness(t *testing.T, kitchen jobs.DelayRange) *harness {
	t.Helper()

	logger := discardLogger()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	registry := tcp.NewRegistry(logger)

	uow := funcUoWFactory(func() commands.UoW { return factory.Create() })
	driverUoW := funcDriverUoWFactory(func() commands.DriverUoW { return factory.Create() })
	customerUoW := funcCustomerUoWFactory(func() commands.CustomerUoW { return factory.Create() })

	assign := commands.NewAssignDriverCommandHandler(uow, registry)
	timers, err := jobs.NewOrderTimers(
		kitchen, kitchen,
		commands.NewPrepareOrderCommandHandler(uow, registry),
		commands.NewMarkOrderReadyCommandHandler(uow, registry),
		assign,
		logger,
	)
	require.NoError(t, err)

	handlers := tcp.Handlers{
		RegisterDriver:   commands.NewRegisterDriverCommandHandler(driverUoW),
		RegisterCustomer: commands.NewRegisterCustomerCommandHandler(customerUoW),
		CreateOrder:      commands.NewCreateOrderCommandHandler(uow, timers),
		SetReadiness:     commands.NewSetDriverReadinessCommandHandler(driverUoW),
		AssignDriver:     assign,
		StartDelivery:    commands.NewStartDeliveryCommandHandler(uow, registry),
		MarkArrived:      commands.NewMarkArrivedCommandHandler(uow, registry),
		CompleteDelivery: commands.NewCompleteDeliveryCommandHandler(uow, registry, nopJournal{}),
		UpdateLocation:   commands.NewUpdateLocationCommandHandler(driverUoW),
		RemoveSession:    commands.NewRemoveSessionCommandHandler(uow),
		OrderStatus:      queries.NewGetOrderStatusQueryHandler(factory),
	}

	server := tcp.NewServer("127.0.0.1:0", handlers, registry, logger)
	require.NoError(t, server.Listen(t.Context()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = server.Serve(context.Background())
	}()

	t.Cleanup(func() {
		_ = server.Shutdown(context.Background())
		<-done
		timers.Stop()
	})

	return &harness{
		server:   server,
		registry: registry,
		stats:    queries.NewGetStatsQueryHandler(factory),
	}
}

func (h *harness) currentStats(t *testing.T) queries.GetStatsQueryResponse {
	t.Helper()
	resp, err := h.stats.Handle(t.Context(), queries.NewGetStatsQuery())
	require.NoError(t, err)
	return resp
}

type client struct {
	t      *testing.T
	conn   net.Conn
	reader *bufio.Reader
}

func (h *harness) dial(t *testing.T) *client {
	t.Helper()
	conn, err := net.DialTimeout("tcp", h.server.Addr().String(), readTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &client{t: t, conn: conn, reader: bufio.NewReader(conn)}
}

func (c *client) send(line string) {
	c.t.Helper()
	_, err := c.conn.Write([]byte(line + "\n"))
	require.NoError(c.t, err)
}

func (c *client) read() string {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(readTimeout)))
	line, err := c.reader.ReadString('\n')
	require.NoError(c.t, err, "no line from server")
	return strings.TrimRight(line, "\r\n")
}

// fields reads one line, checks its type and returns the fields after it.
func (c *client) fields(msgType string) []string {
	c.t.Helper()
	line := c.read()
	require.True(c.t, strings.HasPrefix(line, msgType+":"), "want %s, got %q", msgType, line)
	return strings.Split(strings.TrimPrefix(line, msgType+":"), ":")
}

// waitFor skips lines until one starts with prefix.
func (c *client) waitFor(prefix string) string {
	c.t.Helper()
	for {
		line := c.read()
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
}

func (c *client) registerCustomer(name string) []string {
	c.t.Helper()
	c.send("REGISTER_CUSTOMER:" + name)
	return c.fields("REGISTERED")
}

func (c *client) registerDriver(name string) []string {
	c.t.Helper()
	c.send("REGISTER:" + name)
	return c.fields("REGISTERED")
}

func (c *client) order(pizza, address string) string {
	c.t.Helper()
	c.send("ORDER:" + pizza + ":" + address)
	return c.fields("ORDER_CREATED")[0]
}

func (c *client) expectClosed() {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(readTimeout)))
	_, err := c.reader.ReadString('\n')
	require.ErrorIs(c.t, err, io.EOF)
}
