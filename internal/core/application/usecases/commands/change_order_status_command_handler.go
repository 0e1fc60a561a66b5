package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// statusRoles maps each requestable status to the roles allowed to request
// it. Kitchen-side statuses belong to the restaurant, delivery-side
// statuses additionally to couriers. Operators pass everywhere.
func statusRoles(target order.Status) []kernel.Role {
	switch target {
	case order.StatusConfirmed, order.StatusPreparing, order.StatusReady:
		return []kernel.Role{kernel.RoleAdmin, kernel.RoleRestaurantOwner}
	default:
		return []kernel.Role{kernel.RoleAdmin, kernel.RoleRestaurantOwner, kernel.RoleDelivery}
	}
}

// ChangeOrderStatusCommandHandler moves an order along its lifecycle on
// behalf of staff. The order row is locked for the duration of the
// transaction so concurrent transitions on the same order serialize.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.NotificationPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for staff status
// transitions.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.NotificationPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command and returns the updated order.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if !cmd.ActorRole().IsOneOf(statusRoles(cmd.Target())...) {
		return nil, errs.NewForbiddenError("role may not set this status")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	target, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = target.ChangeStatus(cmd.Target(), cmd.Note(), time.Now().UTC()); err != nil {
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
