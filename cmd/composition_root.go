package cmd

import (
	"log/slog"

	httpadapter "pressing/internal/adapters/in/http"
	"pressing/internal/adapters/out/kafka"
	"pressing/internal/adapters/out/postgres"
	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/ports"
	"pressing/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateBulkTransitionOrderStatusCommandHandler() commands.BulkTransitionOrderStatusCommandHandler {
	return commands.NewBulkTransitionOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCreateCatalogItemCommandHandler() commands.CreateCatalogItemCommandHandler {
	return commands.NewCreateCatalogItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCatalogItemCommandHandler() commands.UpdateCatalogItemCommandHandler {
	return commands.NewUpdateCatalogItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreateDeleteCatalogItemCommandHandler() commands.DeleteCatalogItemCommandHandler {
	return commands.NewDeleteCatalogItemCommandHandler(c.catalogUoWFactory())
}

func (c *CompositionRoot) CreatePublishOrderEventsCommandHandler(
	publisher ports.EventPublisher,
) commands.PublishOrderEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishOrderEventsCommandHandler(f, publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderByReferenceQueryHandler() queries.GetOrderByReferenceQueryHandler {
	return queries.NewGetOrderByReferenceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCatalogItemsQueryHandler() queries.ListCatalogItemsQueryHandler {
	return queries.NewListCatalogItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		Transition:          c.CreateTransitionOrderStatusCommandHandler(),
		BulkTransition:      c.CreateBulkTransitionOrderStatusCommandHandler(),
		RecordPayment:       c.CreateRecordPaymentCommandHandler(),
		CreateCatalogItem:   c.CreateCreateCatalogItemCommandHandler(),
		UpdateCatalogItem:   c.CreateUpdateCatalogItemCommandHandler(),
		DeleteCatalogItem:   c.CreateDeleteCatalogItemCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetOrderByReference: c.CreateGetOrderByReferenceQueryHandler(),
		ListOrders:          c.CreateListOrdersQueryHandler(),
		ListCatalogItems:    c.CreateListCatalogItemsQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateAuthMiddleware() (echo.MiddlewareFunc, error) {
	return httpadapter.NewAuthMiddleware(httpadapter.AuthConfig{
		Secret:   c.config.JWTSecret,
		Issuer:   c.config.JWTIssuer,
		Audience: c.config.JWTAudience,
	}, c.logger)
}

// CreateJobManager wires the background jobs. The outbox relay only runs when
// a Kafka broker is configured; the returned publisher must then be closed on
// shutdown and is nil otherwise.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, *kafka.OrderEventPublisher, error) {
	brokers := c.config.KafkaBrokers()
	if len(brokers) == 0 {
		c.logger.Info("Kafka is not configured, order events stay in the outbox")
		return jobs.NewJobManager(c.logger), nil, nil
	}

	publisher, err := kafka.NewOrderEventPublisher(brokers, c.config.KafkaOrderChangedTopic, c.logger)
	if err != nil {
		return nil, nil, err
	}

	relay := jobs.NewOutboxRelayJob(
		c.CreatePublishOrderEventsCommandHandler(publisher),
		c.config.OutboxRelaySchedule,
		c.config.OutboxBatchSize,
		c.config.OutboxMaxAttempts,
		c.logger,
	)
	return jobs.NewJobManager(c.logger, relay), publisher, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) catalogUoWFactory() commands.CatalogUoWFactory {
	return FuncCatalogUoWFactory(func() commands.CatalogUoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCatalogUoWFactory func() commands.CatalogUoW

func (f FuncCatalogUoWFactory) Create() commands.CatalogUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
