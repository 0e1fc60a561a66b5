package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	target := testOrder(t)
	courierID := kernel.NewUUID()

	cmd, err := commands.NewAssignCourierCommand(target.ID(), courierID)
	require.NoError(t, err)

	orderRepo := new(mockOrderRepository)
	courierRepo := new(mockCourierRepository)
	uow := new(mockUnitOfWork)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		courierRepo.On("Reserve", ctx, courierID).Return(true, nil).Once(),
		orderRepo.On("GetForUpdate", ctx, target.ID()).Return(target, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(mockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, nil)
	dispatched, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusOnDelivery, dispatched.Status())
	require.NotNil(t, dispatched.CourierID())
	assert.True(t, dispatched.CourierID().IsEqual(courierID))

	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_CourierNotReservable(t *testing.T) {
	// Reserve matches no row both for an unknown courier and for one that
	// is offline or already carrying an order; either way the courier is
	// not there to assign and the caller gets not-found.
	cases := []struct {
		name string
	}{
		{"unknown courier"},
		{"courier offline or busy"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			courierID := kernel.NewUUID()

			cmd, err := commands.NewAssignCourierCommand(kernel.NewUUID(), courierID)
			require.NoError(t, err)

			orderRepo := new(mockOrderRepository)
			courierRepo := new(mockCourierRepository)
			uow := new(mockUnitOfWork)

			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("CourierRepository").Return(courierRepo).Once(),
				uow.On("OrderRepository").Return(orderRepo).Once(),
				courierRepo.On("Reserve", ctx, courierID).Return(false, nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(mockUoWFactory)
			factory.On("Create").Return(uow).Once()

			handler := commands.NewAssignCourierCommandHandler(factory, nil)
			_, err = handler.Handle(ctx, cmd)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrObjectNotFound)
			require.NotErrorIs(t, err, errs.ErrConflict)
			orderRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
		})
	}
}

func TestAssignCourierCommandHandler_Handle_OrderAlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	target := testOrder(t)
	require.NoError(t, target.Dispatch(kernel.NewUUID(), target.CreatedAt()))

	courierID := kernel.NewUUID()
	cmd, err := commands.NewAssignCourierCommand(target.ID(), courierID)
	require.NoError(t, err)

	orderRepo := new(mockOrderRepository)
	courierRepo := new(mockCourierRepository)
	uow := new(mockUnitOfWork)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		courierRepo.On("Reserve", ctx, courierID).Return(true, nil).Once(),
		orderRepo.On("GetForUpdate", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(mockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(mockUoWFactory)

	handler := commands.NewAssignCourierCommandHandler(factory, nil)
	_, err := handler.Handle(ctx, commands.AssignCourierCommand{})

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignCourierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
