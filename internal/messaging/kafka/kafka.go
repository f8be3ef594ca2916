package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"storefront/internal/messaging"
)

// messageWriter is the part of *kafkaGo.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

// Publisher writes events to Kafka, one message per event keyed by the caller.
type Publisher struct {
	writer messageWriter
}

var _ messaging.Publisher = (*Publisher)(nil)

// NewPublisher creates a Kafka publisher. The topic is chosen per message.
func NewPublisher(brokers []string) *Publisher {
	return newPublisher(&kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(brokers...),
		Balancer:               &kafkaGo.LeastBytes{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           5 * time.Second,
	})
}

func newPublisher(w messageWriter) *Publisher {
	return &Publisher{writer: w}
}

func (p *Publisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	msg, err := buildMessage(topic, key, event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// buildMessage encodes event as JSON under topic and key.
func buildMessage(topic, key string, event any) (kafkaGo.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
		Headers: []kafkaGo.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}, nil
}

// Close flushes pending writes and releases connections.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
