package commands_test

import (
	"testing"

	"pressing/internal/core/application/usecases/commands"
	"pressing/internal/core/domain/model/identity"
	"pressing/internal/core/domain/model/kernel"
	"pressing/internal/core/domain/model/order"
	"pressing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	factory   *MockOrderUoWFactory
	uow       *MockUoW
	orders    *MockOrderRepository
	directory *MockDirectory
}

func newOrderFixture() orderFixture {
	f := orderFixture{
		factory:   new(MockOrderUoWFactory),
		uow:       newTxUoW(),
		orders:    new(MockOrderRepository),
		directory: new(MockDirectory),
	}
	f.factory.On("Create").Return(f.uow).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("Directory").Return(f.directory).Maybe()
	return f
}

func TestTransitionOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	f := newOrderFixture()
	o := newOrderAt(t, order.Created, 0)
	supervisor := mustActor(t, identity.Supervisor, idPtr(t, 3), nil)

	f.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", mock.Anything, o).Return(nil).Once()

	cmd, err := commands.NewTransitionOrderStatusCommand(supervisor, o.ID(), order.Collected, nil)
	require.NoError(t, err)

	h := commands.NewTransitionOrderStatusCommandHandler(f.factory)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, order.Collected, o.Status())
	history := o.History()
	require.Len(t, history, 2)
	assert.Equal(t, order.Collected, history[1].Status())
	assert.Equal(t, supervisor.User(), history[1].ChangedBy())
	f.uow.AssertCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderStatusCommandHandler_Handle_SupervisorCannotSkipToPlant(t *testing.T) {
	f := newOrderFixture()
	o := newOrderAt(t, order.Created, 0)
	supervisor := mustActor(t, identity.Supervisor, idPtr(t, 3), nil)

	f.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewTransitionOrderStatusCommand(supervisor, o.ID(), order.ReceivedAtPlant, idPtr(t, 21))
	require.NoError(t, err)

	h := commands.NewTransitionOrderStatusCommandHandler(f.factory)
	err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrTransitionNotAllowed)

	var transitionErr *errs.TransitionNotAllowedError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "COLLECTED", transitionErr.AllowedNext)
	assert.Equal(t, order.Created, o.Status())
	f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTransitionOrderStatusCommandHandler_Handle_ReceiveAtPlant(t *testing.T) {
	tests := []struct {
		name        string
		actor       identity.Actor
		plantID     *kernel.ID
		plantExists bool
		wantPlant   int64
		wantErr     error
	}{
		{
			name:        "operator defaults to own plant",
			actor:       mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)),
			plantExists: true,
			wantPlant:   21,
		},
		{
			name:    "operator naming another plant",
			actor:   mustActor(t, identity.PlantOperator, nil, idPtr(t, 21)),
			plantID: idPtr(t, 22),
			wantErr: errs.ErrForbidden,
		},
		{
			name:    "admin without plant",
			actor:   mustActor(t, identity.Admin, nil, nil),
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name:        "admin with unknown plant",
			actor:       mustActor(t, identity.Admin, nil, nil),
			plantID:     idPtr(t, 99),
			plantExists: false,
			wantErr:     errs.ErrObjectNotFound,
		},
		{
			name:        "admin with plant",
			actor:       mustActor(t, identity.Admin, nil, nil),
			plantID:     idPtr(t, 22),
			plantExists: true,
			wantPlant:   22,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			o := newOrderAt(t, order.Collected, 0)

			f.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
			f.orders.On("Update", mock.Anything, o).Return(nil).Maybe()
			f.directory.On("PlantExists", mock.Anything, mock.Anything).Return(tt.plantExists, nil).Maybe()

			cmd, err := commands.NewTransitionOrderStatusCommand(tt.actor, o.ID(), order.ReceivedAtPlant, tt.plantID)
			require.NoError(t, err)

			h := commands.NewTransitionOrderStatusCommandHandler(f.factory)
			err = h.Handle(t.Context(), cmd)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, order.Collected, o.Status())
				assert.Nil(t, o.PlantID())
				f.uow.AssertNotCalled(t, "Commit", mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, order.ReceivedAtPlant, o.Status())
			require.NotNil(t, o.PlantID())
			assert.Equal(t, tt.wantPlant, o.PlantID().Int64())
		})
	}
}

func TestTransitionOrderStatusCommandHandler_Handle_PlantOnOtherTargetIsRejected(t *testing.T) {
	f := newOrderFixture()
	o := newOrderAt(t, order.ReceivedAtPlant, 21)
	operator := mustActor(t, identity.PlantOperator, nil, idPtr(t, 21))

	f.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewTransitionOrderStatusCommand(operator, o.ID(), order.Processing, idPtr(t, 21))
	require.NoError(t, err)

	h := commands.NewTransitionOrderStatusCommandHandler(f.factory)
	err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.ReceivedAtPlant, o.Status())
}

func TestTransitionOrderStatusCommandHandler_Handle_OutOfScope(t *testing.T) {
	f := newOrderFixture()
	o := newOrderAt(t, order.Processing, 21)
	operator := mustActor(t, identity.PlantOperator, nil, idPtr(t, 22))

	f.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewTransitionOrderStatusCommand(operator, o.ID(), order.Processed, nil)
	require.NoError(t, err)

	h := commands.NewTransitionOrderStatusCommandHandler(f.factory)
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrForbidden)
}

func TestTransitionOrderStatusCommandHandler_Handle_ConflictIsPropagated(t *testing.T) {
	f := newOrderFixture()
	o := newOrderAt(t, order.Processing, 21)
	operator := mustActor(t, identity.PlantOperator, nil, idPtr(t, 21))

	f.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	f.orders.On("Update", mock.Anything, o).Return(errs.NewConflictError("order", o.ID())).Once()

	cmd, err := commands.NewTransitionOrderStatusCommand(operator, o.ID(), order.Processed, nil)
	require.NoError(t, err)

	h := commands.NewTransitionOrderStatusCommandHandler(f.factory)
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrConflict)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	f := newOrderFixture()
	id := mustID(t, 404)
	f.orders.On("GetForUpdate", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

	cmd, err := commands.NewTransitionOrderStatusCommand(mustActor(t, identity.Admin, nil, nil), id, order.Collected, nil)
	require.NoError(t, err)

	h := commands.NewTransitionOrderStatusCommandHandler(f.factory)
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
}

func TestNewTransitionOrderStatusCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewTransitionOrderStatusCommand(
		mustActor(t, identity.Admin, nil, nil), kernel.ID{}, order.Unknown, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orderId")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
