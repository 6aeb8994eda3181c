package services_test

import (
	"testing"

	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/core/domain/services"
	"pressing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessPolicy_CanViewOrder(t *testing.T) {
	policy := services.NewAccessPolicy()

	tests := []struct {
		name    string
		actor   identity.Actor
		scope   services.OrderScope
		allowed bool
	}{
		{
			name:    "admin sees everything",
			actor:   mustActor(t, identity.Admin, nil, nil),
			scope:   services.OrderScope{PressingID: mustID(t, 9), Status: order.Created},
			allowed: true,
		},
		{
			name:    "supervisor sees own pressing",
			actor:   mustActor(t, identity.Supervisor, idPtr(t, 3), nil),
			scope:   services.OrderScope{PressingID: mustID(t, 3), Status: order.Processing, PlantID: idPtr(t, 21)},
			allowed: true,
		},
		{
			name:    "supervisor cannot see another pressing",
			actor:   mustActor(t, identity.Supervisor, idPtr(t, 3), nil),
			scope:   services.OrderScope{PressingID: mustID(t, 4), Status: order.Created},
			allowed: false,
		},
		{
			name:    "supervisor without pressing claim",
			actor:   mustActor(t, identity.Supervisor, nil, nil),
			scope:   services.OrderScope{PressingID: mustID(t, 3), Status: order.Created},
			allowed: false,
		},
		{
			name:    "operator sees collected unassigned orders",
			actor:   mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)),
			scope:   services.OrderScope{PressingID: mustID(t, 3), Status: order.Collected},
			allowed: true,
		},
		{
			name:    "operator sees own plant",
			actor:   mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)),
			scope:   services.OrderScope{PressingID: mustID(t, 3), Status: order.Processed, PlantID: idPtr(t, 21)},
			allowed: true,
		},
		{
			name:    "operator cannot see another plant",
			actor:   mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)),
			scope:   services.OrderScope{PressingID: mustID(t, 3), Status: order.Processed, PlantID: idPtr(t, 22)},
			allowed: false,
		},
		{
			name:    "operator cannot see created orders",
			actor:   mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)),
			scope:   services.OrderScope{PressingID: mustID(t, 3), Status: order.Created},
			allowed: false,
		},
		{
			name:    "operator without plant claim",
			actor:   mustActor(t, identity.PlantOperator, nil, nil),
			scope:   services.OrderScope{PressingID: mustID(t, 3), Status: order.Collected},
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.CanViewOrder(tt.actor, tt.scope)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errs.ErrForbidden)
		})
	}
}

func TestAccessPolicy_CanTransition(t *testing.T) {
	policy := services.NewAccessPolicy()
	o := newOrderAt(t, order.Processing, 21)

	assert.NoError(t, policy.CanTransition(mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)), o))
	assert.ErrorIs(t, policy.CanTransition(mustActor(t, identity.PlantOperator, nil, idPtr(t, 22)), o), errs.ErrForbidden)
	assert.NoError(t, policy.CanTransition(mustActor(t, identity.Supervisor, idPtr(t, 3), nil), o))
}

func TestAccessPolicy_ResolveTransitionPlant(t *testing.T) {
	policy := services.NewAccessPolicy()
	operator := mustActor(t, identity.PlantOperator, nil, idPtr(t, 21))

	t.Run("operator defaults to own plant", func(t *testing.T) {
		plant, err := policy.ResolveTransitionPlant(operator, order.ReceivedAtPlant, nil)
		require.NoError(t, err)
		require.NotNil(t, plant)
		assert.Equal(t, int64(21), plant.Int64())
	})

	t.Run("operator may repeat own plant", func(t *testing.T) {
		plant, err := policy.ResolveTransitionPlant(operator, order.ReceivedAtPlant, idPtr(t, 21))
		require.NoError(t, err)
		assert.Equal(t, int64(21), plant.Int64())
	})

	t.Run("operator cannot name another plant", func(t *testing.T) {
		_, err := policy.ResolveTransitionPlant(operator, order.ReceivedAtPlant, idPtr(t, 22))
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("admin keeps the requested plant", func(t *testing.T) {
		admin := mustActor(t, identity.Admin, nil, nil)
		plant, err := policy.ResolveTransitionPlant(admin, order.ReceivedAtPlant, idPtr(t, 22))
		require.NoError(t, err)
		assert.Equal(t, int64(22), plant.Int64())

		plant, err = policy.ResolveTransitionPlant(admin, order.ReceivedAtPlant, nil)
		require.NoError(t, err)
		assert.Nil(t, plant)
	})

	t.Run("other targets pass the request through", func(t *testing.T) {
		plant, err := policy.ResolveTransitionPlant(operator, order.Processing, nil)
		require.NoError(t, err)
		assert.Nil(t, plant)
	})
}

func TestAccessPolicy_RecordPayment(t *testing.T) {
	policy := services.NewAccessPolicy()
	o := newOrderAt(t, order.Delivered, 21)

	assert.ErrorIs(t, policy.CanHandlePayments(mustActor(t, identity.PlantOperator, nil, idPtr(t, 21))), errs.ErrForbidden)
	assert.ErrorIs(t, policy.CanRecordPayment(mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)), o), errs.ErrForbidden)
	assert.NoError(t, policy.CanRecordPayment(mustActor(t, identity.Supervisor, idPtr(t, 3), nil), o))
	assert.ErrorIs(t, policy.CanRecordPayment(mustActor(t, identity.Supervisor, idPtr(t, 4), nil), o), errs.ErrForbidden)
	assert.NoError(t, policy.CanRecordPayment(mustActor(t, identity.Admin, nil, nil), o))
}

func TestAccessPolicy_OrderCreationPressing(t *testing.T) {
	policy := services.NewAccessPolicy()

	pressing, err := policy.OrderCreationPressing(mustActor(t, identity.Supervisor, idPtr(t, 3), nil))
	require.NoError(t, err)
	assert.Equal(t, int64(3), pressing.Int64())

	_, err = policy.OrderCreationPressing(mustActor(t, identity.Admin, nil, nil))
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = policy.OrderCreationPressing(mustActor(t, identity.PlantOperator, idPtr(t, 3), idPtr(t, 21)))
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestAccessPolicy_ResolvePressingScope(t *testing.T) {
	policy := services.NewAccessPolicy()

	tests := []struct {
		name      string
		actor     identity.Actor
		requested *kernel.ID
		want      int64
		wantErr   error
	}{
		{"supervisor own", mustActor(t, identity.Supervisor, idPtr(t, 3), nil), nil, 3, nil},
		{"supervisor same as requested", mustActor(t, identity.Supervisor, idPtr(t, 3), nil), idPtr(t, 3), 3, nil},
		{"supervisor other", mustActor(t, identity.Supervisor, idPtr(t, 3), nil), idPtr(t, 4), 0, errs.ErrForbidden},
		{"supervisor without claim", mustActor(t, identity.Supervisor, nil, nil), nil, 0, errs.ErrForbidden},
		{"admin requested", mustActor(t, identity.Admin, idPtr(t, 3), nil), idPtr(t, 4), 4, nil},
		{"admin falls back to claim", mustActor(t, identity.Admin, idPtr(t, 3), nil), nil, 3, nil},
		{"admin without anything", mustActor(t, identity.Admin, nil, nil), nil, 0, errs.ErrValueIsRequired},
		{"operator", mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)), idPtr(t, 3), 0, errs.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.ResolvePressingScope(tt.actor, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestAccessPolicy_ResolvePlantScope(t *testing.T) {
	policy := services.NewAccessPolicy()

	got, err := policy.ResolvePlantScope(mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(21), got.Int64())

	_, err = policy.ResolvePlantScope(mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)), idPtr(t, 22))
	assert.ErrorIs(t, err, errs.ErrForbidden)

	got, err = policy.ResolvePlantScope(mustActor(t, identity.Admin, nil, nil), idPtr(t, 22))
	require.NoError(t, err)
	assert.Equal(t, int64(22), got.Int64())

	_, err = policy.ResolvePlantScope(mustActor(t, identity.Supervisor, idPtr(t, 3), nil), idPtr(t, 22))
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestAccessPolicy_ListScopes(t *testing.T) {
	policy := services.NewAccessPolicy()

	assert.NoError(t, policy.CanListCollected(mustActor(t, identity.PlantOperator, nil, idPtr(t, 21))))
	assert.NoError(t, policy.CanListCollected(mustActor(t, identity.Admin, nil, nil)))
	assert.ErrorIs(t, policy.CanListCollected(mustActor(t, identity.Supervisor, idPtr(t, 3), nil)), errs.ErrForbidden)
	assert.ErrorIs(t, policy.CanListCollected(mustActor(t, identity.PlantOperator, nil, nil)), errs.ErrForbidden)

	assert.NoError(t, policy.CanListAll(mustActor(t, identity.Admin, nil, nil)))
	assert.ErrorIs(t, policy.CanListAll(mustActor(t, identity.Supervisor, idPtr(t, 3), nil)), errs.ErrForbidden)
}
