package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// ConfirmDeliveryCommandHandler moves an order into the awaiting-receipt
// state on the assigned courier's say-so. The customer closes the handshake
// through ConfirmReceiptCommandHandler.
type ConfirmDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
}

// NewConfirmDeliveryCommandHandler creates a handler for courier delivery
// declarations.
func NewConfirmDeliveryCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the delivery declaration and returns the updated order.
func (h ConfirmDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmDeliveryCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	declaringCourier, err := uow.CourierRepository().GetByUserID(ctx, cmd.CourierUserID())
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()

	target, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = target.MarkDelivered(declaringCourier.ID(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyCustomer(ctx, h.publisher, target)
	return target, nil
}
