package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order on behalf of a customer,
// courier, or operator. An assigned courier is released in the same
// transaction so the cancellation frees them for new work.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation and returns the updated order.
func (h CancelOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	target, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	actorID, cancelledBy := cmd.ActorUserID(), order.CancelledByAdmin
	switch cmd.ActorRole() {
	case kernel.RoleCustomer:
		cancelledBy = order.CancelledByCustomer
	case kernel.RoleDelivery:
		// couriers act through their courier profile, not the user id
		actingCourier, courierErr := courierRepo.GetByUserID(ctx, cmd.ActorUserID())
		if courierErr != nil {
			return nil, courierErr
		}
		actorID, cancelledBy = actingCourier.ID(), order.CancelledByDelivery
	case kernel.RoleAdmin, kernel.RoleRestaurantOwner:
		cancelledBy = order.CancelledByAdmin
	}

	hadCourier := target.CourierID() != nil

	if err = target.Cancel(actorID, cmd.Reason(), cancelledBy, now); err != nil {
		return nil, err
	}

	if hadCourier {
		if err = courierRepo.Release(ctx, *target.CourierID()); err != nil {
			return nil, err
		}
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
