// Package kafka publishes step events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"PlisioPay/internal/messaging"
	"PlisioPay/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

// Publisher implements messaging.Publisher using Kafka.
// Events of one session share a key and therefore a partition.
type Publisher struct {
	writer *kafka.Writer
}

var _ messaging.Publisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher.
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &Publisher{writer: writer}
}

func (p *Publisher) Topic() string { return p.writer.Topic }

// Publish sends an envelope to Kafka.
func (p *Publisher) Publish(ctx context.Context, env messaging.Envelope) error {
	msg, err := toMessage(env)
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish message",
			slog.String("topic", p.writer.Topic),
			slog.String("key", env.Key),
			slog.String("error", err.Error()))
		return err
	}

	slog.DebugContext(ctx, "Message published",
		slog.String("topic", p.writer.Topic),
		slog.String("key", env.Key),
		slog.String("event_id", env.EventID))
	return nil
}

// Close closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(env messaging.Envelope) (kafka.Message, error) {
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{
		Key:   []byte(env.Key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.Type)},
		},
	}
	if env.CorrelationID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: correlation.HeaderName, Value: []byte(env.CorrelationID)})
	}
	return msg, nil
}
