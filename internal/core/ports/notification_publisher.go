package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Notification is a user-facing message emitted on order lifecycle events.
type Notification struct {
	RecipientID kernel.UUID
	OrderID     kernel.UUID
	OrderNumber string
	Kind        string
	Message     string
}

// NotificationPublisher delivers notifications to the messaging fabric.
// Publishing is fire-and-forget from the caller's point of view: handlers
// publish after commit and log failures instead of failing the request.
type NotificationPublisher interface {
	// Publish sends one notification.
	Publish(ctx context.Context, notification Notification) error
}
