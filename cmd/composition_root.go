package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpadapter "pizzadelivery/internal/adapters/in/http"
	"pizzadelivery/internal/adapters/in/tcp"
	"pizzadelivery/internal/adapters/out/memory"
	"pizzadelivery/internal/adapters/out/postgres/deliveryrepo"
	"pizzadelivery/internal/adapters/out/udp"
	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/application/usecases/queries"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot owns the shared state and builds every handler over it.
type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *memory.UnitOfWorkFactory
	registry   *tcp.Registry
	journal    ports.DeliveryJournal
	publisher  *udp.Publisher
	jobManager *jobs.JobManager
}

// NewCompositionRoot wires the application. gormDB may be nil, in which case
// the delivery journal is disabled.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:     config,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: memory.NewUnitOfWorkFactory(memory.NewStore()),
		registry:   tcp.NewRegistry(logger),
		journal:    deliveryrepo.NopJournal{},
	}

	if gormDB != nil {
		c.journal = deliveryrepo.NewGormJournal(gormDB, deliveryrepo.DefaultBufferSize, logger)
	}

	publisher, err := udp.NewPublisher(ctx, config.UDPTarget(), logger)
	if err != nil {
		return nil, err
	}
	c.publisher = publisher

	jobManager, err := jobs.NewJobManager(
		config.PrepareDelay,
		config.ReadyDelay,
		c.CreatePrepareOrderCommandHandler(),
		c.CreateMarkOrderReadyCommandHandler(),
		c.CreateAssignDriverCommandHandler(),
		c.CreateGetActiveDriverLocationsQueryHandler(),
		publisher,
		logger,
	)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create job manager: %w", err)
	}
	c.jobManager = jobManager

	return c, nil
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// Close releases what the root opened. The journal is drained first.
func (c *CompositionRoot) Close(ctx context.Context) error {
	if j, ok := c.journal.(*deliveryrepo.GormJournal); ok {
		if err := j.Close(ctx); err != nil {
			c.logger.WarnContext(ctx, "Delivery journal not drained", "error", err)
		}
	}
	return c.publisher.Close()
}

func (c *CompositionRoot) NewTCPServer() *tcp.Server {
	return tcp.NewServer(c.config.TCPAddress(), c.CreateTCPHandlers(), c.registry, c.logger)
}

func (c *CompositionRoot) NewHTTPServer() *httpadapter.Server {
	var deliveries *queries.GetRecentDeliveriesQueryHandler
	if c.gormDB != nil {
		h := c.CreateGetRecentDeliveriesQueryHandler()
		deliveries = &h
	}

	return httpadapter.NewServer(
		c.CreateGetStatsQueryHandler(),
		c.CreateGetUncompletedOrdersQueryHandler(),
		c.CreateGetActiveDriverLocationsQueryHandler(),
		deliveries,
	)
}

func (c *CompositionRoot) CreateTCPHandlers() tcp.Handlers {
	return tcp.Handlers{
		RegisterDriver:   c.CreateRegisterDriverCommandHandler(),
		RegisterCustomer: c.CreateRegisterCustomerCommandHandler(),
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		SetReadiness:     c.CreateSetDriverReadinessCommandHandler(),
		AssignDriver:     c.CreateAssignDriverCommandHandler(),
		StartDelivery:    c.CreateStartDeliveryCommandHandler(),
		MarkArrived:      c.CreateMarkArrivedCommandHandler(),
		CompleteDelivery: c.CreateCompleteDeliveryCommandHandler(),
		UpdateLocation:   c.CreateUpdateLocationCommandHandler(),
		RemoveSession:    c.CreateRemoveSessionCommandHandler(),
		OrderStatus:      c.CreateGetOrderStatusQueryHandler(),
	}
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	return commands.NewRegisterDriverCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateRegisterCustomerCommandHandler() commands.RegisterCustomerCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterCustomerCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.fullUoWFactory(), c.jobManager.Scheduler())
}

func (c *CompositionRoot) CreateSetDriverReadinessCommandHandler() commands.SetDriverReadinessCommandHandler {
	return commands.NewSetDriverReadinessCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreatePrepareOrderCommandHandler() commands.PrepareOrderCommandHandler {
	return commands.NewPrepareOrderCommandHandler(c.fullUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	return commands.NewMarkOrderReadyCommandHandler(c.fullUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.fullUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	return commands.NewStartDeliveryCommandHandler(c.fullUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateMarkArrivedCommandHandler() commands.MarkArrivedCommandHandler {
	return commands.NewMarkArrivedCommandHandler(c.fullUoWFactory(), c.registry)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.fullUoWFactory(), c.registry, c.journal)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.driverUoWFactory())
}

func (c *CompositionRoot) CreateRemoveSessionCommandHandler() commands.RemoveSessionCommandHandler {
	return commands.NewRemoveSessionCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetStatsQueryHandler() queries.GetStatsQueryHandler {
	return queries.NewGetStatsQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetActiveDriverLocationsQueryHandler() queries.GetActiveDriverLocationsQueryHandler {
	return queries.NewGetActiveDriverLocationsQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetRecentDeliveriesQueryHandler() queries.GetRecentDeliveriesQueryHandler {
	return queries.NewGetRecentDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) driverUoWFactory() commands.DriverUoWFactory {
	return FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
