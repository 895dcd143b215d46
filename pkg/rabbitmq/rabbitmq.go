package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/rs/zerolog/log"
	amqp "github.com/streadway/amqp"
)

// OrderEventsQueue receives one message per placed order.
const OrderEventsQueue = "order_events"

// OrderPlacedType is the AMQP message type of order placed events.
const OrderPlacedType = "order.placed"

// ErrChannelClosed is returned once the client has been closed.
var ErrChannelClosed = errors.New("rabbitmq channel is not available")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
	// Queue defaults to OrderEventsQueue.
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// order events queue.
func NewClient(cfg Config) (*Client, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = OrderEventsQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("queue", queue).Msg("rabbitmq client connected")
	return &Client{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
		c.channel = nil
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
		c.conn = nil
	}
	return errors.Join(errs...)
}

// PublishOrderPlaced publishes event as a persistent JSON message on the
// order events queue.
func (c *Client) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := newOrderPlacedPublishing(event, time.Now())
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel == nil {
		return ErrChannelClosed
	}

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish order %d: %w", event.OrderID, err)
	}

	log.Debug().Uint("order_id", event.OrderID).Str("queue", c.queue).Msg("sent order event")
	return nil
}

func newOrderPlacedPublishing(event models.OrderPlacedEvent, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal order event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         OrderPlacedType,
		MessageId:    fmt.Sprintf("order-%d", event.OrderID),
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
	}, nil
}

// OrderEventHandler processes one decoded order event.
type OrderEventHandler func(ctx context.Context, event models.OrderPlacedEvent) error

// ConsumeOrderEvents delivers order events to handler until ctx is done or
// the channel closes. Handled messages are acked; handler failures are
// requeued once; messages that cannot be decoded are dropped.
func (c *Client) ConsumeOrderEvents(ctx context.Context, handler OrderEventHandler) error {
	c.mu.Lock()
	ch := c.channel
	c.mu.Unlock()
	if ch == nil {
		return ErrChannelClosed
	}

	msgs, err := ch.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Info().Str("queue", c.queue).Msg("waiting for order events")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			handleDelivery(ctx, msg, handler)
		}
	}
}

func handleDelivery(ctx context.Context, msg amqp.Delivery, handler OrderEventHandler) {
	var event models.OrderPlacedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Warn().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("dropping undecodable order event")
		if err := msg.Nack(false, false); err != nil {
			log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to nack message")
		}
		return
	}

	if err := handler(ctx, event); err != nil {
		log.Error().Err(err).Uint("order_id", event.OrderID).Msg("failed to process order event")
		if err := msg.Nack(false, !msg.Redelivered); err != nil {
			log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to nack message")
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("failed to ack message")
	}
}

// LogOrderEvent is an OrderEventHandler that records the event in the log.
func LogOrderEvent(_ context.Context, event models.OrderPlacedEvent) error {
	log.Info().
		Uint("order_id", event.OrderID).
		Uint("user_id", event.UserID).
		Float64("total", event.Total).
		Int("lines", len(event.Items)).
		Msg("order placed")
	return nil
}
