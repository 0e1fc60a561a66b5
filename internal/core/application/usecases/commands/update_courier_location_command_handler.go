package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
)

// UpdateCourierLocationCommandHandler records a courier's location report.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierLocationCommandHandler creates a handler for courier
// location reports.
func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location report and returns the updated courier.
func (h UpdateCourierLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCourierLocationCommand,
) (*courier.Courier, error) {
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

	target, err := courierRepo.GetByUserID(ctx, cmd.CourierUserID())
	if err != nil {
		return nil, err
	}

	if err = target.MoveTo(cmd.Location(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = courierRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
