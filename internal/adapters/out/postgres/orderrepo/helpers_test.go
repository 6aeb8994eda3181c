package orderrepo_test

import (
	"testing"
	"time"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/testdb"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.ID, aggregate any) {
	m.Called(id, aggregate)
}

func mustID(t *testing.T, v int64) kernel.ID {
	t.Helper()
	id, err := kernel.IDFromInt64(v)
	require.NoError(t, err)
	return id
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func mustItem(t *testing.T, label string, qty int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(label, qty, mustMoney(t, price))
	require.NoError(t, err)
	return item
}

func mustActor(t *testing.T, role identity.Role) identity.Actor {
	t.Helper()
	actor, err := identity.NewActor("user-"+role.String(), "Test "+role.String(), role, nil, nil)
	require.NoError(t, err)
	return actor
}

// newTestOrder builds a CREATED order of pressing testdb.PressingID totalling 2300.
func newTestOrder(t *testing.T, sequence int64) *order.Order {
	t.Helper()
	pressingID := mustID(t, testdb.PressingID)
	code, err := order.NewReferenceCode(pressingID, testNow, sequence)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewID(),
		code,
		pressingID,
		mustID(t, testdb.ClientID),
		[]order.Item{
			mustItem(t, "Shirt", 3, "500"),
			mustItem(t, "Pants", 2, "400"),
		},
		identity.UserRef{ID: "sup-1", Name: "Supervisor"},
		testNow,
	)
	require.NoError(t, err)
	return o
}

// advance walks o forward with ADMIN until it reaches target.
func advance(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	admin := mustActor(t, identity.Admin)
	plant := mustID(t, testdb.PlantID)
	at := testNow
	for o.Status() != target {
		next, ok := order.NextStatus(o.Status(), identity.Admin)
		require.True(t, ok)
		var plantID *kernel.ID
		if next == order.ReceivedAtPlant {
			plantID = &plant
		}
		at = at.Add(time.Minute)
		require.NoError(t, o.Transition(admin, next, plantID, at))
	}
}
