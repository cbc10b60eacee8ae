package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/infrastructure/metrics"
)

// publishChannel is the subset of *amqp.Channel the notifier needs.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Notifier publishes transaction events to a RabbitMQ topic exchange.
// The event type doubles as the routing key, so downstream consumers
// can bind to transaction.deposit, transaction.*, and so on.
type Notifier struct {
	conn     *amqp.Connection
	channel  publishChannel
	exchange string
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// NewNotifier connects to RabbitMQ and declares the topic exchange.
func NewNotifier(url, exchange string, logger zerolog.Logger, m *metrics.Metrics) (*Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info().
		Str("exchange", exchange).
		Msg("transaction notifier connected")

	return &Notifier{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
		metrics:  m,
	}, nil
}

// TransactionCompleted publishes the event with its type as routing key.
func (n *Notifier) TransactionCompleted(ctx context.Context, event *domain.TransactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transaction event: %w", err)
	}

	err = n.channel.PublishWithContext(ctx,
		n.exchange,
		event.EventType,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		if n.metrics != nil {
			n.metrics.NotificationFailures.Inc()
		}
		return fmt.Errorf("publish %s: %w", event.EventType, err)
	}

	if n.metrics != nil {
		n.metrics.NotificationsPublished.Inc()
	}

	n.logger.Debug().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("reference", event.Reference).
		Msg("transaction event published")
	return nil
}

// Close closes the channel and connection.
func (n *Notifier) Close() error {
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			n.logger.Warn().Err(err).Msg("closing notifier channel")
		}
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// LogNotifier is a stand-in Notifier for environments without a broker.
// Events are logged and dropped.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// TransactionCompleted logs the event instead of publishing it.
func (n *LogNotifier) TransactionCompleted(_ context.Context, event *domain.TransactionEvent) error {
	n.logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("reference", event.Reference).
		Int("entries", len(event.Entries)).
		Msg("transaction completed")
	return nil
}
