package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// ConfirmReceiptCommandHandler closes the delivery handshake. In one
// transaction the order reaches its delivered terminal state, the courier
// is released for new work, and the order's delivery fee is credited to
// the courier's earnings.
type ConfirmReceiptCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.NotificationPublisher
}

// NewConfirmReceiptCommandHandler creates a handler for customer receipt
// confirmations.
func NewConfirmReceiptCommandHandler(
	uowFactory UoWFactory,
	publisher ports.NotificationPublisher,
) ConfirmReceiptCommandHandler {
	return ConfirmReceiptCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the receipt confirmation and returns the updated order.
func (h ConfirmReceiptCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmReceiptCommand,
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

	if err = target.ConfirmReceipt(cmd.CustomerID(), now); err != nil {
		return nil, err
	}

	assignedCourier, err := courierRepo.Get(ctx, *target.CourierID())
	if err != nil {
		return nil, err
	}

	assignedCourier.Release(now)
	if err = assignedCourier.AddEarnings(target.Charges().DeliveryFee, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = courierRepo.Update(ctx, assignedCourier); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	notifyCustomer(ctx, h.publisher, target)
	h.notifyCourier(ctx, target, assignedCourier.UserID())
	return target, nil
}

func (h ConfirmReceiptCommandHandler) notifyCourier(
	ctx context.Context,
	o *order.Order,
	courierUserID kernel.UUID,
) {
	if h.publisher == nil {
		return
	}

	n := ports.Notification{
		RecipientID: courierUserID,
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		Kind:        "delivery_confirmed",
		Message:     fmt.Sprintf("Customer confirmed receipt of order %s", o.Number()),
	}
	if err := h.publisher.Publish(ctx, n); err != nil {
		slog.Warn("notification publish failed",
			"order", o.ID().String(), "kind", n.Kind, "error", err)
	}
}
