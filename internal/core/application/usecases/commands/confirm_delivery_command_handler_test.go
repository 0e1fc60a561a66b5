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

func TestConfirmDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	target := testOrder(t)
	assignedCourier := testCourier(t)
	require.NoError(t, target.Dispatch(assignedCourier.ID(), target.CreatedAt()))

	cmd, err := commands.NewConfirmDeliveryCommand(target.ID(), assignedCourier.UserID())
	require.NoError(t, err)

	orderRepo := new(mockOrderRepository)
	courierRepo := new(mockCourierRepository)
	uow := new(mockUnitOfWork)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetByUserID", ctx, assignedCourier.UserID()).Return(assignedCourier, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, target.ID()).Return(target, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(mockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory, nil)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusDeliveringConfirmation, updated.Status())
	require.NotNil(t, updated.DeliveredAt())
	assert.Equal(t, order.PaymentPending, updated.PaymentStatus())
}

func TestConfirmDeliveryCommandHandler_Handle_WrongCourier(t *testing.T) {
	ctx := t.Context()
	target := testOrder(t)
	require.NoError(t, target.Dispatch(kernel.NewUUID(), target.CreatedAt()))

	otherCourier := testCourier(t)
	cmd, err := commands.NewConfirmDeliveryCommand(target.ID(), otherCourier.UserID())
	require.NoError(t, err)

	orderRepo := new(mockOrderRepository)
	courierRepo := new(mockCourierRepository)
	uow := new(mockUnitOfWork)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("GetByUserID", ctx, otherCourier.UserID()).Return(otherCourier, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", ctx, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(mockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory, nil)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
