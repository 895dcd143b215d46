// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"storefront/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// ErrPublisherClosed is returned by Publish after Close.
var ErrPublisherClosed = errors.New("kafka publisher is closed")

// Config holds the Kafka connection details.
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	MaxAttempts  int
}

// Validate checks that the config names at least one broker and a topic.
func (c Config) Validate() error {
	if len(c.Brokers) == 0 {
		return errors.New("kafka: at least one broker is required")
	}
	if c.Topic == "" {
		return errors.New("kafka: topic is required")
	}
	return nil
}

// Publisher writes order events to a topic, keyed by order ID so all
// events of one order land on the same partition.
type Publisher struct {
	writer *kafka.Writer
	topic  string
	closed atomic.Bool
}

// NewPublisher creates a synchronous Publisher.
func NewPublisher(cfg Config) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = 10 * time.Millisecond
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            cfg.MaxAttempts,
		AllowAutoTopicCreation: true,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Error().Msgf("kafka writer: "+msg, args...)
		}),
	}

	return &Publisher{writer: writer, topic: cfg.Topic}, nil
}

// PublishOrderPlaced writes event and blocks until the brokers acknowledge it.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}

	msg, err := orderPlacedMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write order %d to %s: %w", event.OrderID, p.topic, err)
	}

	log.Debug().Uint("order_id", event.OrderID).Str("topic", p.topic).Msg("sent order event")
	return nil
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func orderPlacedMessage(event models.OrderPlacedEvent) (kafka.Message, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal order event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte("order.placed")},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: event.PlacedAt,
	}, nil
}
