package services_test

import (
	"testing"
	"time"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

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

func mustItem(t *testing.T, label string, qty int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(label, qty, mustMoney(t, price))
	require.NoError(t, err)
	return item
}

func mustActor(t *testing.T, role identity.Role, pressingID, plantID *kernel.ID) identity.Actor {
	t.Helper()
	actor, err := identity.NewActor("user-"+role.String(), "", role, pressingID, plantID)
	require.NoError(t, err)
	return actor
}

// newOrderAt builds an order of pressing 3 walked forward by ADMIN to target.
// Orders that pass ReceivedAtPlant are assigned to plant.
func newOrderAt(t *testing.T, target order.Status, plant int64) *order.Order {
	t.Helper()
	pressingID := mustID(t, 3)
	code, err := order.NewReferenceCode(pressingID, testNow, 1)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewID(), code, pressingID, mustID(t, 11),
		[]order.Item{mustItem(t, "Shirt", 2, "500")},
		identity.UserRef{ID: "sup-1", Name: "Supervisor"}, testNow)
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
	return o
}
