package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// statusMessage renders the customer-facing text for a lifecycle event.
func statusMessage(status order.Status, number string) string {
	switch status {
	case order.StatusPending:
		return fmt.Sprintf("Your order %s has been received and is being processed", number)
	case order.StatusConfirmed:
		return fmt.Sprintf("Your order %s has been confirmed by the restaurant", number)
	case order.StatusPreparing:
		return fmt.Sprintf("Your order %s is being prepared", number)
	case order.StatusReady:
		return fmt.Sprintf("Your order %s is ready for pickup", number)
	case order.StatusOnDelivery:
		return fmt.Sprintf("Your order %s is on its way", number)
	case order.StatusDeliveringConfirmation:
		return fmt.Sprintf("Your order %s has been delivered. Please confirm receipt", number)
	case order.StatusDelivered:
		return fmt.Sprintf("Your order %s has been delivered. Enjoy!", number)
	case order.StatusCancelled:
		return fmt.Sprintf("Your order %s has been cancelled", number)
	default:
		return fmt.Sprintf("Your order %s was updated", number)
	}
}

// notifyCustomer publishes a lifecycle notification to the ordering
// customer. Publishing is best-effort: it runs after the transaction
// committed and a failure is logged, never propagated.
func notifyCustomer(ctx context.Context, publisher ports.NotificationPublisher, o *order.Order) {
	if publisher == nil {
		return
	}

	n := ports.Notification{
		RecipientID: o.CustomerID(),
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		Kind:        "order_" + o.Status().String(),
		Message:     statusMessage(o.Status(), o.Number()),
	}
	if err := publisher.Publish(ctx, n); err != nil {
		slog.Warn("notification publish failed",
			"order", o.ID().String(), "kind", n.Kind, "error", err)
	}
}
