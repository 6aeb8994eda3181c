package queries_test

import (
	"context"
	"testing"
	"time"

	"pressing/internal/adapters/out/postgres/catalogrepo"
	"pressing/internal/adapters/out/postgres/orderrepo"
	"pressing/internal/core/domain/model/catalog"
	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/testdb"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.ID, any) {}

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

func admin(t *testing.T) identity.Actor {
	t.Helper()
	return mustActor(t, identity.Admin, nil, nil)
}

func supervisorOf(t *testing.T, pressing int64) identity.Actor {
	t.Helper()
	return mustActor(t, identity.Supervisor, idPtr(t, pressing), nil)
}

func operatorOf(t *testing.T, plant int64) identity.Actor {
	t.Helper()
	return mustActor(t, identity.PlantOperator, nil, idPtr(t, plant))
}

// seedOrder stores an order of pressing created minutes after testNow and
// moved forward by an administrator to status.
func seedOrder(t *testing.T, db *gorm.DB, pressing int64, minutes int, status order.Status) *order.Order {
	t.Helper()
	pressingID := mustID(t, pressing)
	createdAt := testNow.Add(time.Duration(minutes) * time.Minute)
	code, err := order.NewReferenceCode(pressingID, createdAt, int64(minutes+1))
	require.NoError(t, err)

	shirt, err := order.NewItem("Shirt", 3, mustMoney(t, "500"))
	require.NoError(t, err)
	pants, err := order.NewItem("Pants", 2, mustMoney(t, "400"))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewID(), code, pressingID, mustID(t, testdb.ClientID),
		[]order.Item{shirt, pants}, identity.UserRef{ID: "sup-1", Name: "Supervisor"}, createdAt)
	require.NoError(t, err)

	at := createdAt
	for o.Status() != status {
		next, ok := order.NextStatus(o.Status(), identity.Admin)
		require.True(t, ok)
		var plant *kernel.ID
		if next == order.ReceivedAtPlant {
			plant = idPtr(t, testdb.PlantID)
		}
		at = at.Add(time.Second)
		require.NoError(t, o.Transition(admin(t), next, plant, at))
	}
	if status == order.Delivered {
		_, err = o.RecordPayment(kernel.NewID(), order.Cash, at.Add(time.Second))
		require.NoError(t, err)
	}

	require.NoError(t, orderrepo.NewGormOrderRepository(db, noopTracker{}).Add(context.Background(), o))
	return o
}

func seedCatalogItem(t *testing.T, db *gorm.DB, pressing int64, label, price string) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(kernel.NewID(), mustID(t, pressing), label, mustMoney(t, price))
	require.NoError(t, err)
	require.NoError(t, catalogrepo.NewGormCatalogRepository(db).Add(context.Background(), item))
	return item
}
