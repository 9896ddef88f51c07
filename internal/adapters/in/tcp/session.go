package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/application/usecases/queries"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/protocol"
)

// MaxLineLength caps a single client line.
const MaxLineLength = 64 * 1024

type sessionKind int

const (
	unregistered sessionKind = iota
	driverSession
	customerSession
)

// Session speaks the line protocol with one client. It starts unregistered,
// becomes a driver or customer session on the first successful registration
// and never changes class afterwards. Rejected commands get an ERROR reply
// and leave the connection open.
type Session struct {
	id       kernel.ID
	conn     net.Conn
	kind     sessionKind
	closing  bool
	handlers Handlers
	registry *Registry
	logger   *slog.Logger
}

func newSession(conn net.Conn, handlers Handlers, registry *Registry, logger *slog.Logger) *Session {
	id := kernel.NewID(kernel.SessionIDPrefix)
	return &Session{
		id:       id,
		conn:     conn,
		handlers: handlers,
		registry: registry,
		logger:   logger.With("session_id", id.String(), "remote", conn.RemoteAddr().String()),
	}
}

// Run reads lines until the client disconnects, sends DISCONNECT or the
// connection fails. The session's driver or customer is removed on the way out.
func (s *Session) Run(ctx context.Context) {
	s.registry.add(s.id, s.conn)
	s.logger.InfoContext(ctx, "Client connected")

	defer s.close(ctx)

	scanner := bufio.NewScanner(s.conn)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineLength)

	for !s.closing && scanner.Scan() {
		s.handleLine(ctx, scanner.Text())
	}

	if err := scanner.Err(); err != nil && !s.closing && !errors.Is(err, net.ErrClosed) {
		s.logger.WarnContext(ctx, "Read failed", "error", err)
	}
}

func (s *Session) close(ctx context.Context) {
	s.registry.remove(s.id)
	_ = s.conn.Close()

	cmd, err := commands.NewRemoveSessionCommand(s.id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build remove session command", "error", err)
		return
	}

	removed, err := s.handlers.RemoveSession.Handle(ctx, cmd)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to remove session", "error", err)
		return
	}

	if removed.Kind != "" {
		s.logger.InfoContext(ctx, "Client disconnected and removed",
			"kind", removed.Kind, "id", removed.ID, "name", removed.Name)
		return
	}
	s.logger.InfoContext(ctx, "Client disconnected")
}

func (s *Session) handleLine(ctx context.Context, line string) {
	req, err := protocol.Parse(line)
	if err != nil {
		s.reject(ctx, err)
		return
	}

	if req.Command != protocol.Location {
		s.logger.InfoContext(ctx, "Received", "line", strings.TrimSpace(line))
	}

	if err = s.dispatch(ctx, req); err != nil {
		s.reject(ctx, err)
	}
}

func (s *Session) dispatch(ctx context.Context, req protocol.Request) error {
	switch req.Command {
	case protocol.Register:
		return s.registerDriver(ctx, req)
	case protocol.RegisterCustomer:
		return s.registerCustomer(ctx, req)
	case protocol.Order:
		return s.placeOrder(ctx, req)
	case protocol.Ready:
		return s.setReadiness(ctx, true)
	case protocol.NotReady:
		return s.setReadiness(ctx, false)
	case protocol.OutForDelivery:
		return s.startDelivery(ctx, req)
	case protocol.Arrived:
		return s.markArrived(ctx, req)
	case protocol.Delivered:
		return s.completeDelivery(ctx, req)
	case protocol.Location:
		return s.updateLocation(ctx, req)
	case protocol.Status:
		return s.orderStatus(ctx, req)
	case protocol.Disconnect:
		s.logger.InfoContext(ctx, "Disconnect requested")
		s.closing = true
		return nil
	default:
		s.logger.WarnContext(ctx, "Unknown command", "command", string(req.Command))
		return fmt.Errorf("%w: %s", ErrUnknownCommand, req.Command)
	}
}

func (s *Session) registerDriver(ctx context.Context, req protocol.Request) error {
	if s.kind != unregistered {
		return ErrAlreadyRegistered
	}

	name, _ := req.Arg(0)
	cmd, err := commands.NewRegisterDriverCommand(kernel.NewID(kernel.DriverIDPrefix), s.id, name)
	if err != nil {
		return err
	}

	d, err := s.handlers.RegisterDriver.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	s.kind = driverSession
	s.logger.InfoContext(ctx, "Driver registered",
		"driver_id", d.ID().String(), "name", d.Name(), "branch", d.Branch().ID(), "location", d.Location().String())

	loc := d.Location()
	return s.reply(ctx, protocol.NewDriverRegistered(
		d.ID().String(), int(loc.X()), int(loc.Y()), d.Branch().ID(), d.Branch().Name(),
	))
}

func (s *Session) registerCustomer(ctx context.Context, req protocol.Request) error {
	if s.kind != unregistered {
		return ErrAlreadyRegistered
	}

	name, _ := req.Arg(0)
	cmd, err := commands.NewRegisterCustomerCommand(kernel.NewID(kernel.CustomerIDPrefix), s.id, name)
	if err != nil {
		return err
	}

	c, err := s.handlers.RegisterCustomer.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	s.kind = customerSession
	s.logger.InfoContext(ctx, "Customer registered",
		"customer_id", c.ID().String(), "name", c.Name(), "location", c.Location().String())

	loc := c.Location()
	return s.reply(ctx, protocol.NewCustomerRegistered(c.ID().String(), int(loc.X()), int(loc.Y())))
}

// placeOrder takes the address from the third field only; the delimiter
// cannot appear inside it.
func (s *Session) placeOrder(ctx context.Context, req protocol.Request) error {
	if s.kind == driverSession {
		return commands.ErrDriversCannotOrder
	}

	pizza, _ := req.Arg(0)
	address, _ := req.Arg(1)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewID(kernel.OrderIDPrefix), s.id, pizza, address)
	if err != nil {
		return err
	}

	o, err := s.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Order created",
		"order_id", o.ID().String(), "pizza", o.PizzaType().String(), "address", o.Address())
	return s.reply(ctx, protocol.NewOrderCreated(o.ID().String()))
}

func (s *Session) setReadiness(ctx context.Context, ready bool) error {
	if s.kind != driverSession {
		return commands.ErrDriverNotRegistered
	}

	cmd, err := commands.NewSetDriverReadinessCommand(s.id, ready)
	if err != nil {
		return err
	}

	if err = s.handlers.SetReadiness.Handle(ctx, cmd); err != nil {
		return err
	}

	if err = s.reply(ctx, protocol.NewAccepted()); err != nil {
		return err
	}

	if ready {
		s.drain(ctx)
	}
	return nil
}

func (s *Session) startDelivery(ctx context.Context, req protocol.Request) error {
	if s.kind != driverSession {
		return commands.ErrDriverNotRegistered
	}

	orderID, err := orderIDArg(req, 0)
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartDeliveryCommand(s.id, orderID)
	if err != nil {
		return err
	}

	if err = s.handlers.StartDelivery.Handle(ctx, cmd); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Delivery started", "order_id", cmd.OrderID().String())
	return s.reply(ctx, protocol.NewAccepted())
}

func (s *Session) markArrived(ctx context.Context, req protocol.Request) error {
	if s.kind != driverSession {
		return commands.ErrDriverNotRegistered
	}

	if !req.HasArgs(3) {
		return commands.ErrOrderIDIsRequired
	}

	orderID, err := orderIDArg(req, 0)
	if err != nil {
		return err
	}

	x, y, err := coordinates(req, 1)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkArrivedCommand(s.id, orderID, x, y)
	if err != nil {
		return err
	}

	if err = s.handlers.MarkArrived.Handle(ctx, cmd); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Driver arrived", "order_id", cmd.OrderID().String(), "location", cmd.Location().String())
	return s.reply(ctx, protocol.NewAccepted())
}

func (s *Session) completeDelivery(ctx context.Context, req protocol.Request) error {
	if s.kind != driverSession {
		return commands.ErrDriverNotRegistered
	}

	orderID, err := orderIDArg(req, 0)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteDeliveryCommand(s.id, orderID)
	if err != nil {
		return err
	}

	if err = s.handlers.CompleteDelivery.Handle(ctx, cmd); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Order delivered", "order_id", cmd.OrderID().String())
	if err = s.reply(ctx, protocol.NewAccepted()); err != nil {
		return err
	}

	s.drain(ctx)
	return nil
}

// updateLocation is silent on success; drivers send it continuously.
func (s *Session) updateLocation(ctx context.Context, req protocol.Request) error {
	if s.kind != driverSession {
		return commands.ErrDriverNotRegistered
	}

	if !req.HasArgs(2) {
		return ErrInvalidLocationFormat
	}

	x, y, err := coordinates(req, 0)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateLocationCommand(s.id, x, y)
	if err != nil {
		return err
	}

	return s.handlers.UpdateLocation.Handle(ctx, cmd)
}

func (s *Session) orderStatus(ctx context.Context, req protocol.Request) error {
	if s.kind != customerSession {
		return queries.ErrCustomerNotRegistered
	}

	orderID, err := orderIDArg(req, 0)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderStatusQuery(s.id, orderID)
	if err != nil {
		return err
	}

	resp, err := s.handlers.OrderStatus.Handle(ctx, query)
	if err != nil {
		return err
	}

	return s.reply(ctx, protocol.NewStatusUpdate(resp.OrderID, resp.Status))
}

// drain gives one waiting order a chance at the drivers that are free now.
func (s *Session) drain(ctx context.Context) {
	err := s.handlers.AssignDriver.Handle(ctx, commands.NewAssignWaitingOrderCommand())
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrNoOrderFound), errors.Is(err, commands.ErrNoAvailableDriver):
	default:
		s.logger.ErrorContext(ctx, "Failed to assign waiting order", "error", err)
	}
}

func (s *Session) reply(ctx context.Context, msg protocol.Message) error {
	if err := s.registry.Send(ctx, s.id, msg); err != nil {
		s.closing = true
		return err
	}
	return nil
}

func (s *Session) reject(ctx context.Context, err error) {
	if s.closing {
		return
	}

	text, known := reason(err)
	if !known {
		s.logger.ErrorContext(ctx, "Command failed", "error", err)
	}

	_ = s.reply(ctx, protocol.NewError(text))
}

// orderIDArg reads the order id in field i. A missing field is
// ErrOrderIDIsRequired; a field that holds no usable id names no order.
func orderIDArg(req protocol.Request, i int) (kernel.ID, error) {
	raw, ok := req.Arg(i)
	if !ok {
		return kernel.ID{}, commands.ErrOrderIDIsRequired
	}

	id, err := kernel.IDFromString(raw)
	if err != nil {
		return kernel.ID{}, commands.ErrOrderNotFound
	}
	return id, nil
}

func coordinates(req protocol.Request, from int) (int, int, error) {
	rawX, _ := req.Arg(from)
	rawY, _ := req.Arg(from + 1)

	x, errX := strconv.Atoi(strings.TrimSpace(rawX))
	y, errY := strconv.Atoi(strings.TrimSpace(rawY))
	if errX != nil || errY != nil {
		return 0, 0, ErrInvalidLocationFormat
	}
	return x, y, nil
}
