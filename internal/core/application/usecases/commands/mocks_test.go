package commands_test

import (
	"context"
	"testing"
	"time"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/catalog"
	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetManyForUpdate(ctx context.Context, ids []kernel.ID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) NextReferenceSequence(
	ctx context.Context, pressingID kernel.ID, day time.Time,
) (int64, error) {
	args := m.Called(ctx, pressingID, day)
	return args.Get(0).(int64), args.Error(1)
}

type MockCatalogRepository struct{ mock.Mock }

func (m *MockCatalogRepository) Add(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogRepository) AddIfAbsent(ctx context.Context, item *catalog.Item) (*catalog.Item, error) {
	args := m.Called(ctx, item)
	stored, _ := args.Get(0).(*catalog.Item)
	return stored, args.Error(1)
}

func (m *MockCatalogRepository) Update(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogRepository) Delete(ctx context.Context, id kernel.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) Get(ctx context.Context, id kernel.ID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*catalog.Item)
	return item, args.Error(1)
}

func (m *MockCatalogRepository) FindByLabel(
	ctx context.Context, pressingID kernel.ID, label string,
) (*catalog.Item, error) {
	args := m.Called(ctx, pressingID, label)
	item, _ := args.Get(0).(*catalog.Item)
	return item, args.Error(1)
}

type MockDirectory struct{ mock.Mock }

func (m *MockDirectory) PressingMinimumOrderAmount(ctx context.Context, pressingID kernel.ID) (*kernel.Money, error) {
	args := m.Called(ctx, pressingID)
	minimum, _ := args.Get(0).(*kernel.Money)
	return minimum, args.Error(1)
}

func (m *MockDirectory) ClientBelongsToPressing(ctx context.Context, clientID, pressingID kernel.ID) (bool, error) {
	args := m.Called(ctx, clientID, pressingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectory) PlantExists(ctx context.Context, plantID kernel.ID) (bool, error) {
	args := m.Called(ctx, plantID)
	return args.Bool(0), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkAttemptFailed(
	ctx context.Context, id uuid.UUID, reason string, maxAttempts int,
) error {
	args := m.Called(ctx, id, reason, maxAttempts)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour the handlers depend on.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

func (m *MockUoW) Directory() ports.Directory {
	args := m.Called()
	return args.Get(0).(ports.Directory)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCatalogUoWFactory struct{ mock.Mock }

func (m *MockCatalogUoWFactory) Create() commands.CatalogUoW {
	args := m.Called()
	return args.Get(0).(commands.CatalogUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

// newTxUoW returns a unit of work that begins, commits and rolls back without error.
func newTxUoW() *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return uow
}

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func mustID(t *testing.T, v int64) kernel.ID {
	t.Helper()
	id, err := kernel.IDFromInt64(v)
	require.NoError(t, err)
	return id
}

func idPtr(t *testing.T, v int64) *kernel.ID {
	t.Helper()
	id := mustID(t, v)
	return &id
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func mustActor(t *testing.T, role identity.Role, pressingID, plantID *kernel.ID) identity.Actor {
	t.Helper()
	actor, err := identity.NewActor("user-"+role.String(), "Test "+role.String(), role, pressingID, plantID)
	require.NoError(t, err)
	return actor
}

func mustCatalogItem(t *testing.T, id, pressingID int64, label, price string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(mustID(t, id), mustID(t, pressingID), label, mustMoney(t, price))
	require.NoError(t, err)
	return item
}

// newOrderAt builds an order of pressing 3 with total 2300, walked forward by
// ADMIN to target. Orders that pass RECEIVED_AT_PLANT are assigned to plant.
func newOrderAt(t *testing.T, target order.Status, plant int64) *order.Order {
	t.Helper()
	pressingID := mustID(t, 3)
	code, err := order.NewReferenceCode(pressingID, testNow, 1)
	require.NoError(t, err)

	shirt, err := order.NewItem("Shirt", 3, mustMoney(t, "500"))
	require.NoError(t, err)
	pants, err := order.NewItem("Pants", 2, mustMoney(t, "400"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewID(), code, pressingID, mustID(t, 11),
		[]order.Item{shirt, pants}, identity.UserRef{ID: "sup-1", Name: "Supervisor"}, testNow)
	require.NoError(t, err)

	admin := mustActor(t, identity.Admin, nil, nil)
	for o.Status() != target {
		next, ok := order.NextStatus(o.Status(), identity.Admin)
		require.True(t, ok)
		var plantID *kernel.ID
		if next == order.ReceivedAtPlant {
			plantID = idPtr(t, plant)
		}
		require.NoError(t, o.Transition(admin, next, plantID, testNow))
	}
	o.ClearDomainEvents()
	return o
}
