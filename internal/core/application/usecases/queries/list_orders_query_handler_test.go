package queries_test

import (
	"context"
	"testing"

	"pressing/internal/core/application/usecases/queries"
	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"
	"pressing/internal/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderListScope(t *testing.T) {
	scope, err := queries.ParseOrderListScope("by-plant")
	require.NoError(t, err)
	assert.Equal(t, queries.ScopeByPlant, scope)

	_, err = queries.ParseOrderListScope("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.ParseOrderListScope("mine")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListOrdersQuery_RejectsUnknownStatus(t *testing.T) {
	bad := order.Status(42)
	_, err := queries.NewListOrdersQuery(admin(t), queries.ScopeAll, nil, nil, &bad)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	query := queries.ListOrdersQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
}

func TestListOrdersQueryHandler_Scopes(t *testing.T) {
	db := testdb.Open(t)
	created := seedOrder(t, db, testdb.PressingID, 0, order.Created)
	collected := seedOrder(t, db, testdb.PressingID, 1, order.Collected)
	atPlant := seedOrder(t, db, testdb.PressingID, 2, order.Processing)
	elsewhere := seedOrder(t, db, testdb.OtherPressingID, 3, order.Collected)
	handler := queries.NewListOrdersQueryHandler(db)

	collectedStatus := order.Collected

	tests := []struct {
		name       string
		actor      identity.Actor
		scope      queries.OrderListScope
		pressingID *kernel.ID
		plantID    *kernel.ID
		status     *order.Status
		want       []*order.Order
		wantErr    error
	}{
		{
			name:  "supervisor lists own pressing newest first",
			actor: supervisorOf(t, testdb.PressingID),
			scope: queries.ScopeByPressing,
			want:  []*order.Order{atPlant, collected, created},
		},
		{
			name:       "supervisor asking for another pressing",
			actor:      supervisorOf(t, testdb.PressingID),
			scope:      queries.ScopeByPressing,
			pressingID: idPtr(t, testdb.OtherPressingID),
			wantErr:    errs.ErrForbidden,
		},
		{
			name:       "admin names a pressing",
			actor:      admin(t),
			scope:      queries.ScopeByPressing,
			pressingID: idPtr(t, testdb.OtherPressingID),
			want:       []*order.Order{elsewhere},
		},
		{
			name:   "status filter",
			actor:  supervisorOf(t, testdb.PressingID),
			scope:  queries.ScopeByPressing,
			status: &collectedStatus,
			want:   []*order.Order{collected},
		},
		{
			name:  "operator lists own plant",
			actor: operatorOf(t, testdb.PlantID),
			scope: queries.ScopeByPlant,
			want:  []*order.Order{atPlant},
		},
		{
			name:  "operator lists collected orders of every pressing",
			actor: operatorOf(t, testdb.PlantID),
			scope: queries.ScopeCollected,
			want:  []*order.Order{elsewhere, collected},
		},
		{
			name:    "supervisor cannot list collected orders",
			actor:   supervisorOf(t, testdb.PressingID),
			scope:   queries.ScopeCollected,
			wantErr: errs.ErrForbidden,
		},
		{
			name:  "admin lists everything",
			actor: admin(t),
			scope: queries.ScopeAll,
			want:  []*order.Order{elsewhere, atPlant, collected, created},
		},
		{
			name:    "operator cannot list everything",
			actor:   operatorOf(t, testdb.PlantID),
			scope:   queries.ScopeAll,
			wantErr: errs.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewListOrdersQuery(tt.actor, tt.scope, tt.pressingID, tt.plantID, tt.status)
			require.NoError(t, err)

			got, err := handler.Handle(context.Background(), query)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			gotIDs := make([]int64, 0, len(got))
			for _, o := range got {
				gotIDs = append(gotIDs, o.ID.Int64())
				assert.Len(t, o.Items, 2)
			}
			wantIDs := make([]int64, 0, len(tt.want))
			for _, o := range tt.want {
				wantIDs = append(wantIDs, o.ID().Int64())
			}
			assert.Equal(t, wantIDs, gotIDs)
		})
	}
}
