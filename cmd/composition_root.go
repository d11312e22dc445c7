package cmd

import (
	"log/slog"
	"net/http"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/kafka"
	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/picktaskrepo"
	"fulfillment/internal/adapters/out/postgres/supplierrepo"
	"fulfillment/internal/adapters/out/suppliers"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Shared state lives here: the adapter
// cache, the warehouse adapter, the dispatcher and the metrics registry each exist
// once per process.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Prometheus
	warehouse  *suppliers.WarehouseAdapter
	adapters   *commands.AdapterCache
	scorer     services.SupplierScorer
	dispatcher *jobs.Dispatcher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	warehouse := suppliers.NewWarehouseAdapter(picktaskrepo.NewGormPickTaskRepository(gormDB))
	factory := suppliers.NewFactory(warehouse, suppliers.APIConfig{
		Timeout:           config.AdapterTimeout,
		RequestsPerSecond: config.SupplierAPIRatePerSecond,
	}, logger)

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    metrics.NewPrometheus(),
		warehouse:  warehouse,
		adapters:   commands.NewAdapterCache(factory),
		scorer:     services.NewSupplierScorer(),
	}
	c.dispatcher = jobs.NewDispatcher(c.CreateProcessFulfillmentJobCommandHandler(),
		config.DispatchWorkers, config.DispatchQueueSize, logger)
	return c
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateFulfillmentJobCommandHandler() commands.CreateFulfillmentJobCommandHandler {
	return commands.NewCreateFulfillmentJobCommandHandler(c.uow(), c.dispatcher, c.config.MaxRetries, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateProcessFulfillmentJobCommandHandler() commands.ProcessFulfillmentJobCommandHandler {
	return commands.NewProcessFulfillmentJobCommandHandler(
		c.uow(),
		c.adapters,
		c.warehouse,
		commands.NewSupplierSelector(c.scorer),
		c.config.AdapterTimeout,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateSyncTrackingCommandHandler() commands.SyncTrackingCommandHandler {
	return commands.NewSyncTrackingCommandHandler(
		c.uow(),
		c.adapters,
		c.warehouse,
		c.config.AdapterTimeout,
		c.config.TrackingSyncConcurrency,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRetryDueJobsCommandHandler() commands.RetryDueJobsCommandHandler {
	return commands.NewRetryDueJobsCommandHandler(c.uow(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateShipPickTaskCommandHandler() commands.ShipPickTaskCommandHandler {
	var f commands.PickTaskUoWFactory = FuncPickTaskUoWFactory(func() commands.PickTaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewShipPickTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderFulfillmentQueryHandler() queries.GetOrderFulfillmentQueryHandler {
	return queries.NewGetOrderFulfillmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTopSuppliersQueryHandler() queries.GetTopSuppliersQueryHandler {
	return queries.NewGetTopSuppliersQueryHandler(supplierrepo.NewGormSupplierRepository(c.gormDB), c.scorer)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.dispatcher,
		c.CreateSyncTrackingCommandHandler(),
		c.CreateRetryDueJobsCommandHandler(),
		jobs.Schedules{
			TrackingSync: c.config.TrackingSyncSchedule,
			RetrySweep:   c.config.RetrySweepSchedule,
		},
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateFulfillment: c.CreateCreateFulfillmentJobCommandHandler(),
		ProcessJob:        c.CreateProcessFulfillmentJobCommandHandler(),
		RetryDueJobs:      c.CreateRetryDueJobsCommandHandler(),
		SyncTracking:      c.CreateSyncTrackingCommandHandler(),
		ShipPickTask:      c.CreateShipPickTaskCommandHandler(),
		OrderFulfillment:  c.CreateGetOrderFulfillmentQueryHandler(),
		TopSuppliers:      c.CreateGetTopSuppliersQueryHandler(),
	})
	return httpin.NewRouter(server, c.MetricsHandler())
}

// CreateOrderPaidConsumer returns nil when no Kafka brokers are configured.
func (c *CompositionRoot) CreateOrderPaidConsumer() (*kafka.Consumer, error) {
	brokers := c.config.KafkaBrokers()
	if len(brokers) == 0 {
		return nil, nil
	}
	handler := kafka.NewOrderPaidHandler(c.CreateCreateFulfillmentJobCommandHandler(), c.logger)
	return kafka.NewConsumer(brokers, c.config.KafkaConsumerGroup, c.config.KafkaOrderPaidTopic, handler, c.logger)
}

func (c *CompositionRoot) MetricsHandler() http.Handler {
	return c.metrics.Handler()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncPickTaskUoWFactory func() commands.PickTaskUoW

func (f FuncPickTaskUoWFactory) Create() commands.PickTaskUoW {
	return f()
}
