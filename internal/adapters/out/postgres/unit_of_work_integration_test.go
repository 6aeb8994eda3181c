package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "pressing/internal/adapters/out/postgres"
	"pressing/internal/adapters/out/postgres/outboxrepo"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work and the outbox against
// a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_status_history, payments, reference_sequences, outbox_messages",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) addOrders(n int) {
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		suite.Require().NoError(uow.OrderRepository().Add(ctx, createTestOrder(suite.T(), int64(i))))
		suite.Require().NoError(uow.Commit(ctx))
	}
}

// TestCommit_OrderAndOutboxAreAtomic verifies that a transition and its event
// become visible together.
func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_OrderAndOutboxAreAtomic() {
	ctx := context.Background()
	suite.addOrders(1)

	var stored outboxrepo.OutboxMessageDTO
	suite.Require().NoError(suite.db.First(&stored).Error)
	suite.Equal(order.EventTypeCreated, stored.EventType)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().GetForUpdate(ctx, mustAggregateID(suite, stored.AggregateID))
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Transition(adminActor(suite.T()), order.Collected, nil, testNow.Add(time.Minute)))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))

	var visible int64
	suite.Require().NoError(suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Count(&visible).Error)
	suite.Equal(int64(1), visible, "uncommitted events are not visible outside the transaction")

	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().NoError(suite.db.Model(&outboxrepo.OutboxMessageDTO{}).Count(&visible).Error)
	suite.Equal(int64(2), visible)
}

// TestFetchPending_ConcurrentRelaysSkipLockedRows verifies two relays never
// receive the same message.
func (suite *UnitOfWorkIntegrationTestSuite) TestFetchPending_ConcurrentRelaysSkipLockedRows() {
	ctx := context.Background()
	suite.addOrders(4)

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	defer func() { _ = first.Rollback(ctx) }()
	batch1, err := first.OutboxRepository().FetchPending(ctx, 2)
	suite.Require().NoError(err)
	suite.Require().Len(batch1, 2)

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()
	batch2, err := second.OutboxRepository().FetchPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(batch2, 2)

	seen := map[string]bool{}
	for _, msg := range append(append([]ports.OutboxMessage{}, batch1...), batch2...) {
		suite.False(seen[msg.ID.String()], "message %s fetched twice", msg.ID)
		seen[msg.ID.String()] = true
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
