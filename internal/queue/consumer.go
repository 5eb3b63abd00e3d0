package queue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	authQueueName = "auth.events"
	auditLogPath  = "logs/auth.log"
)

// StartAuthConsumer connects to RabbitMQ, declares the auth.events
// queue (durable) and consumes messages forever, appending one audit
// line per event to logs/auth.log. It runs a reconnect loop with capped
// backoff and never returns; call it in a goroutine. Processing errors
// are logged and the offending message rejected so the service keeps
// operating.
func StartAuthConsumer(url string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			slog.Warn("auth-consumer: dial failed",
				slog.Any("error", err), slog.Duration("retry_in", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			slog.Warn("auth-consumer: consume loop ended, reconnecting", slog.Any("error", err))
			time.Sleep(2 * time.Second)
		}
		_ = conn.Close()
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		slog.Warn("auth-consumer: set QoS failed", slog.Any("error", err))
	}

	if _, err := ch.QueueDeclare(authQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(authQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			slog.Warn("auth-consumer: handle message failed", slog.Any("error", err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

// handleMessage appends a single audit line for one event.
func handleMessage(body []byte) error {
	var ev AuthEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	line := fmt.Sprintf("%s event=%s user_id=%s username=%s role=%s\n",
		ev.At, ev.Event, ev.UserID, ev.Username, ev.Role)
	return appendAuditLine(line)
}

func appendAuditLine(line string) error {
	if err := os.MkdirAll(filepath.Dir(auditLogPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(auditLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = f.WriteString(line)
	return err
}
