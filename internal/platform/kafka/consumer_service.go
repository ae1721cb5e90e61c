package kafka

import (
	"context"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

// ConsumerService drives the read loop of one topic and hands every message to a handler.
// Handler failures are logged and the loop moves on; there is no redelivery.
type ConsumerService struct {
	topic    string
	consumer Consumer
	handler  MessageHandler
	logger   observability.Logger
}

func NewConsumerService(topic string, consumer Consumer, handler MessageHandler, logger observability.Logger) *ConsumerService {
	return &ConsumerService{
		topic:    topic,
		consumer: consumer,
		handler:  handler,
		logger:   logger,
	}
}

func (c *ConsumerService) Start(ctx context.Context) error {
	c.logger.Info("Kafka consumer started. Waiting for messages...", zap.String("topic", c.topic))

	for {
		msg, err := c.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				c.logger.Info("Context done, exiting Kafka read loop.", zap.String("topic", c.topic), zap.Error(err))
				break
			}
			c.logger.Error("❌ Error reading from Kafka", zap.String("topic", c.topic), zap.Error(err))
			continue
		}

		c.logger.Info("📨 Raw Kafka message received",
			zap.String("topic", c.topic),
			zap.ByteString("key", msg.Key),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)

		msgCtx := ExtractTraceContext(ctx, msg.Headers)
		if err := c.handler.HandleMessage(msgCtx, *msg); err != nil {
			c.logger.Error("❌ Failed to handle message",
				zap.String("topic", c.topic),
				zap.ByteString("key", msg.Key),
				zap.Error(err),
			)
			continue
		}
	}

	c.logger.Info("Consumer service finished. Shutting down...", zap.String("topic", c.topic))
	return nil
}

// ExtractTraceContext extracts OpenTelemetry trace context from Kafka message headers
func ExtractTraceContext(ctx context.Context, headers []kafkago.Header) context.Context {
	carrier := propagation.MapCarrier{}
	for _, header := range headers {
		carrier[header.Key] = string(header.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
