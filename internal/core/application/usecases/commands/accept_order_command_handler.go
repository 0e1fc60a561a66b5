package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ErrOrderAlreadyTaken is returned when another courier won the order
// first.
var ErrOrderAlreadyTaken = errs.NewConflictError("order was already taken by another courier")

// AcceptOrderCommandHandler implements pull dispatch: couriers race for
// unassigned orders. The arbiter is a single conditional update that binds
// the courier only while the order has none; of N concurrent accepts for
// the same order exactly one wins.
//
// Accepting an order does not touch the courier's availability flag, so a
// courier may hold several pulled orders at once.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
}

// NewAcceptOrderCommandHandler creates a handler for pull dispatch.
func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the accept command and returns the updated order.
func (h AcceptOrderCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptOrderCommand,
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

	acceptingCourier, err := courierRepo.GetByUserID(ctx, cmd.CourierUserID())
	if err != nil {
		return nil, err
	}

	won, err := orderRepo.AssignCourierIfUnassigned(ctx, cmd.OrderID(), acceptingCourier.ID())
	if err != nil {
		return nil, err
	}
	if !won {
		// A losing update matches zero rows both for a taken order and for
		// an order that does not exist; a re-read tells the two apart.
		if _, getErr := orderRepo.Get(ctx, cmd.OrderID()); getErr != nil {
			return nil, getErr
		}
		return nil, ErrOrderAlreadyTaken
	}

	target, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = target.Accept(acceptingCourier.ID(), time.Now().UTC()); err != nil {
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
