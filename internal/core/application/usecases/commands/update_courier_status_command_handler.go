package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/courier"
)

// UpdateCourierStatusCommandHandler applies a courier's presence toggles.
type UpdateCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewUpdateCourierStatusCommandHandler creates a handler for courier
// presence updates.
func NewUpdateCourierStatusCommandHandler(
	uowFactory CourierUoWFactory,
) UpdateCourierStatusCommandHandler {
	return UpdateCourierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the presence update and returns the updated courier.
func (h UpdateCourierStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCourierStatusCommand,
) (*courier.Courier, error) {
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

	courierRepo := uow.CourierRepository()

	target, err := courierRepo.GetByUserID(ctx, cmd.CourierUserID())
	if err != nil {
		return nil, err
	}

	if cmd.IsOnline() != nil {
		target.SetOnline(*cmd.IsOnline(), now)
	}
	if cmd.IsAvailable() != nil {
		target.SetAvailability(*cmd.IsAvailable(), now)
	}

	if err = courierRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
