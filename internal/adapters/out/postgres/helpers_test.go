package postgres_test

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

func createTestOrder(t *testing.T, sequence int64) *order.Order {
	t.Helper()
	pressingID := mustID(t, 3)
	code, err := order.NewReferenceCode(pressingID, testNow, sequence)
	require.NoError(t, err)

	price, err := kernel.ParseMoney("500")
	require.NoError(t, err)
	item, err := order.NewItem("Shirt", 2, price)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewID(), code, pressingID, mustID(t, 11), []order.Item{item},
		identity.UserRef{ID: "sup-1", Name: "Supervisor"}, testNow,
	)
	require.NoError(t, err)
	return o
}

func adminActor(t *testing.T) identity.Actor {
	t.Helper()
	actor, err := identity.NewActor("admin-1", "Admin", identity.Admin, nil, nil)
	require.NoError(t, err)
	return actor
}

func mustAggregateID(s interface{ T() *testing.T }, raw string) kernel.ID {
	id, err := kernel.ParseID(raw)
	require.NoError(s.T(), err)
	return id
}
