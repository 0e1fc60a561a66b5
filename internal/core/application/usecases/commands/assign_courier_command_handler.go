package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)


// AssignCourierCommandHandler implements push dispatch: an operator picks
// the courier. The courier reservation and the order binding happen in one
// transaction, so a failed binding also frees the reserved courier.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
}

// NewAssignCourierCommandHandler creates a handler for push dispatch.
func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the push dispatch command and returns the updated order.
//
// The courier reservation is a conditional update on the availability
// flags: of two operators racing for the same courier exactly one wins.
// A courier that is unknown, offline or already carrying an order matches
// no row, and the loser gets an ObjectNotFoundError for the courier.
func (h AssignCourierCommandHandler) Handle(
	ctx context.Context,
	cmd AssignCourierCommand,
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

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	reserved, err := courierRepo.Reserve(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, errs.NewObjectNotFoundError("available courier", cmd.CourierID())
	}

	target, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = target.Dispatch(cmd.CourierID(), time.Now().UTC()); err != nil {
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
