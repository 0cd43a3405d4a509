// Package kafka publishes integration events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/bankcore/debit-card-service/internal/events"
)

// DefaultTopic is the topic withdrawal events land on.
const DefaultTopic = "debit.withdrawal.completed"

// Publisher writes events as JSON messages keyed by debit card ID so all
// events of one card land on the same partition in order.
type Publisher struct {
	writer *kafka.Writer
}

// Compile-time assertion: *Publisher implements events.Publisher.
var _ events.Publisher = (*Publisher)(nil)

// NewPublisher builds a publisher against the given brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// PublishWithdrawalCompleted emits one WithdrawalCompleted event.
func (p *Publisher) PublishWithdrawalCompleted(ctx context.Context, event events.WithdrawalCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode withdrawal event: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DebitCardID),
		Value: data,
	}); err != nil {
		return fmt.Errorf("publish withdrawal event: %w", err)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
