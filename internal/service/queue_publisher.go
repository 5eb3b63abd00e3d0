// Package queue_publisher provides functions to publish auth domain
// events to RabbitMQ. Errors are logged and returned so callers can
// ignore failures without interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/dmelikov/user-auth-api/internal/queue"
)

// AuthQueueName is the queue auth events are published to and consumed from.
const AuthQueueName = "auth.events"

// PublishAuthEvent publishes an AuthEvent to the auth.events queue. The
// function never panics; any error is logged and returned so the caller
// can choose to ignore it. Messages are marked as persistent.
func PublishAuthEvent(ctx context.Context, url string, event q.AuthEvent) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		slog.Warn("rabbitmq: dial failed", slog.Any("error", err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		slog.Warn("rabbitmq: channel open failed", slog.Any("error", err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(AuthQueueName, true, false, false, false, nil); err != nil {
		slog.Warn("rabbitmq: queue declare failed", slog.Any("error", err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		slog.Warn("rabbitmq: marshal event failed", slog.Any("error", err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", AuthQueueName, false, false, pub); err != nil {
		slog.Warn("rabbitmq: publish failed", slog.Any("error", err))
		return err
	}
	return nil
}
