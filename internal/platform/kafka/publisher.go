package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

// EventTypeHeader names the payload type carried by a message.
const EventTypeHeader = "event-type"

// Publisher serializes events as flat JSON documents and writes them to a single topic.
type Publisher struct {
	producer Producer
	topic    string
	logger   observability.Logger
}

func NewPublisher(producer Producer, topic string, logger observability.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish encodes event at call time, so later mutation of the caller's value is never observed downstream.
func (p *Publisher) Publish(ctx context.Context, key, eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("❌ Failed to serialize event",
			zap.Error(err),
			zap.String("topic", p.topic),
			zap.String("event_type", eventType),
		)
		return fmt.Errorf("serializing %s: %w", eventType, err)
	}

	msg := kafkago.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: EventTypeHeader, Value: []byte(eventType)},
		},
	}

	if err := p.producer.WriteMessage(ctx, msg); err != nil {
		p.logger.Error("❌ Failed to publish event",
			zap.Error(err),
			zap.String("topic", p.topic),
			zap.String("key", key),
		)
		return fmt.Errorf("publishing %s to %s: %w", eventType, p.topic, err)
	}

	p.logger.Info("📤 Sent event",
		zap.String("topic", p.topic),
		zap.String("event_type", eventType),
		zap.String("key", key),
	)
	return nil
}

// Topic returns the topic this publisher writes to.
func (p *Publisher) Topic() string { return p.topic }

// HeaderValue returns the value of the named header, or "" when absent.
func HeaderValue(msg kafkago.Message, key string) string {
	for _, header := range msg.Headers {
		if header.Key == key {
			return string(header.Value)
		}
	}
	return ""
}
