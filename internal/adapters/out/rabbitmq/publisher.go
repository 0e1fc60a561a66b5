// Package rabbitmq publishes order lifecycle notifications to a RabbitMQ
// topic exchange. Downstream consumers (push notification senders, customer
// apps) bind their queues by notification kind.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// exchangeName is the durable topic exchange notifications go through.
	exchangeName = "order.notifications"
	// publishTimeout bounds a single publish; the broker confirming slower
	// than this counts as a failure.
	publishTimeout = 5 * time.Second
)

// notificationDoc is the wire shape of one published notification.
type notificationDoc struct {
	RecipientID string    `json:"recipient_id"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher implements NotificationPublisher on top of an AMQP connection.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher connects to the broker and declares the notifications
// exchange. The exchange is durable: notifications survive broker restarts
// once routed to a durable queue.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish sends one notification to the exchange. The routing key is the
// notification kind, so consumers can bind to a single kind such as
// "order_cancelled" or to "#" for everything.
func (p *Publisher) Publish(ctx context.Context, notification ports.Notification) error {
	body, err := json.Marshal(notificationDoc{
		RecipientID: notification.RecipientID.String(),
		OrderID:     notification.OrderID.String(),
		OrderNumber: notification.OrderNumber,
		Kind:        notification.Kind,
		Message:     notification.Message,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(ctx,
		exchangeName,
		notification.Kind, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		})
}

// Close shuts down the channel and the connection.
func (p *Publisher) Close() error {
	if p.ch != nil && !p.ch.IsClosed() {
		if err := p.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}

var _ ports.NotificationPublisher = (*Publisher)(nil)
