package notification

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/kafka"
)

// OrderConfirmationHandler decodes order-topic messages for the dispatcher.
func (d *Dispatcher) OrderConfirmationHandler() kafka.MessageHandler {
	return kafka.HandlerFunc(func(ctx context.Context, msg kafkago.Message) error {
		var confirmation events.OrderConfirmation
		if err := d.decode(msg, events.TypeOrderConfirmation, &confirmation); err != nil {
			return err
		}
		return d.HandleOrderConfirmation(ctx, confirmation)
	})
}

// PaymentConfirmationHandler decodes payment-topic messages for the dispatcher.
func (d *Dispatcher) PaymentConfirmationHandler() kafka.MessageHandler {
	return kafka.HandlerFunc(func(ctx context.Context, msg kafkago.Message) error {
		var confirmation events.PaymentConfirmation
		if err := d.decode(msg, events.TypePaymentConfirmation, &confirmation); err != nil {
			return err
		}
		return d.HandlePaymentConfirmation(ctx, confirmation)
	})
}

func (d *Dispatcher) decode(msg kafkago.Message, eventType string, dst any) error {
	if got := kafka.HeaderValue(msg, kafka.EventTypeHeader); got != "" && got != eventType {
		d.logger.Warn("⚠️ Unexpected event type on topic",
			zap.String("topic", msg.Topic),
			zap.String("expected", eventType),
			zap.String("got", got),
		)
	}
	if err := json.Unmarshal(msg.Value, dst); err != nil {
		d.logger.Error("❌ Invalid JSON in "+eventType+" event",
			zap.Error(err),
			zap.ByteString("raw_value", msg.Value),
		)
		return fmt.Errorf("decoding %s: %w", eventType, err)
	}
	return nil
}
