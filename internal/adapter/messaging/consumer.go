package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/corebank/corebank/internal/domain"
	"github.com/corebank/corebank/internal/infrastructure/metrics"
	"github.com/corebank/corebank/internal/usecase"
)

// retryCountHeader tracks how many times a delivery has been requeued.
const retryCountHeader = "x-retry-count"

// errMalformedEvent marks payloads that can never succeed. They skip
// the retry loop and go straight to the dead-letter queue.
var errMalformedEvent = errors.New("malformed event")

// ConsumerConfig wires the projection consumer to its broker topology.
type ConsumerConfig struct {
	Exchange        string
	Queue           string
	DeadLetterQueue string
	MaxRetries      int
}

// ProjectionConsumer ingests account.* and customer.* facts from the
// upstream systems and applies them to the local projections. Failed
// deliveries are requeued with a bounded retry count, then dead-lettered.
type ProjectionConsumer struct {
	conn        *amqp.Connection
	channel     *amqp.Channel
	cfg         ConsumerConfig
	projections *usecase.ProjectionUseCase
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewProjectionConsumer connects to RabbitMQ and declares the consumer
// topology: the upstream topic exchange, the work queue bound to
// account.# and customer.#, and the dead-letter queue.
func NewProjectionConsumer(url string, cfg ConsumerConfig, projections *usecase.ProjectionUseCase, logger zerolog.Logger, m *metrics.Metrics) (*ProjectionConsumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	consumer := &ProjectionConsumer{
		conn:        conn,
		channel:     channel,
		cfg:         cfg,
		projections: projections,
		logger:      logger,
		metrics:     m,
	}

	if err := consumer.declareTopology(); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	logger.Info().
		Str("exchange", cfg.Exchange).
		Str("queue", cfg.Queue).
		Str("dead_letter_queue", cfg.DeadLetterQueue).
		Msg("projection consumer connected")

	return consumer, nil
}

func (c *ProjectionConsumer) declareTopology() error {
	if err := c.channel.ExchangeDeclare(
		c.cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := c.channel.QueueDeclare(
		c.cfg.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	for _, pattern := range []string{"account.#", "customer.#"} {
		if err := c.channel.QueueBind(c.cfg.Queue, pattern, c.cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue to %s: %w", pattern, err)
		}
	}

	if _, err := c.channel.QueueDeclare(
		c.cfg.DeadLetterQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("declare dead-letter queue: %w", err)
	}

	return nil
}

// Start consumes deliveries until the context is cancelled.
func (c *ProjectionConsumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		c.cfg.Queue,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	c.logger.Info().Str("queue", c.cfg.Queue).Msg("projection consumer started")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("projection consumer stopping")
			return nil
		case msg, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handleDelivery(ctx, msg)
		}
	}
}

func (c *ProjectionConsumer) handleDelivery(ctx context.Context, msg amqp.Delivery) {
	key := eventKey(msg)
	err := c.process(ctx, key, msg.Body)
	if err == nil {
		if c.metrics != nil {
			c.metrics.ProjectionEvents.WithLabelValues(key).Inc()
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			c.logger.Error().Err(ackErr).Msg("ack failed")
		}
		return
	}

	attempts := retryCount(msg.Headers)
	logger := c.logger.With().
		Str("routing_key", key).
		Int("attempts", attempts).
		Logger()

	if errors.Is(err, errMalformedEvent) || attempts >= c.cfg.MaxRetries {
		logger.Error().Err(err).Msg("dead-lettering event")
		if c.metrics != nil {
			c.metrics.ProjectionDeadLetter.Inc()
		}
		if dlErr := c.deadLetter(ctx, msg); dlErr != nil {
			logger.Error().Err(dlErr).Msg("dead-letter publish failed")
			if nackErr := msg.Nack(false, true); nackErr != nil {
				logger.Error().Err(nackErr).Msg("nack failed")
			}
			return
		}
	} else {
		logger.Warn().Err(err).Msg("requeueing event")
		if c.metrics != nil {
			c.metrics.ProjectionRetries.Inc()
		}
		if reqErr := c.requeue(ctx, msg, attempts+1); reqErr != nil {
			logger.Error().Err(reqErr).Msg("requeue publish failed")
			if nackErr := msg.Nack(false, true); nackErr != nil {
				logger.Error().Err(nackErr).Msg("nack failed")
			}
			return
		}
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		logger.Error().Err(ackErr).Msg("ack failed")
	}
}

// process routes a raw delivery to the projection use case. Unknown
// routing keys and undecodable payloads are malformed: no number of
// retries will fix them.
func (c *ProjectionConsumer) process(ctx context.Context, routingKey string, body []byte) error {
	switch {
	case strings.HasPrefix(routingKey, "account."):
		var event domain.AccountEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformedEvent, err)
		}
		if event.AccountID == "" {
			return fmt.Errorf("%w: missing account_id", errMalformedEvent)
		}
		return c.projections.ApplyAccountEvent(ctx, routingKey, &event)

	case strings.HasPrefix(routingKey, "customer."):
		var event domain.CustomerEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformedEvent, err)
		}
		if event.CustomerID == "" {
			return fmt.Errorf("%w: missing customer_id", errMalformedEvent)
		}
		return c.projections.ApplyCustomerEvent(ctx, routingKey, &event)

	default:
		return fmt.Errorf("%w: unroutable key %q", errMalformedEvent, routingKey)
	}
}

// requeue republishes the delivery to its own queue with an incremented
// retry count. Publishing through the default exchange targets the
// queue directly, so other bindings never see the retry.
func (c *ProjectionConsumer) requeue(ctx context.Context, msg amqp.Delivery, attempts int) error {
	headers := amqp.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[retryCountHeader] = int32(attempts)

	return c.channel.PublishWithContext(ctx,
		"", // default exchange
		c.cfg.Queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  msg.ContentType,
			DeliveryMode: amqp.Persistent,
			Headers:      headers,
			Type:         eventKey(msg),
			Body:         msg.Body,
		},
	)
}

func (c *ProjectionConsumer) deadLetter(ctx context.Context, msg amqp.Delivery) error {
	return c.channel.PublishWithContext(ctx,
		"",
		c.cfg.DeadLetterQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  msg.ContentType,
			DeliveryMode: amqp.Persistent,
			Headers:      msg.Headers,
			Type:         eventKey(msg),
			Body:         msg.Body,
		},
	)
}

// Close closes the channel and connection.
func (c *ProjectionConsumer) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn().Err(err).Msg("closing consumer channel")
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// eventKey recovers the upstream routing key. Requeued deliveries
// arrive through the default exchange with the queue name as routing
// key; the original key travels in the Type property.
func eventKey(msg amqp.Delivery) string {
	if msg.Type != "" {
		return msg.Type
	}
	return msg.RoutingKey
}

func retryCount(headers amqp.Table) int {
	raw, ok := headers[retryCountHeader]
	if !ok {
		return 0
	}
	switch v := raw.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
