package order

import (
	"context"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/kafka"
)

// KafkaConfirmationPublisher writes order confirmations keyed by order reference.
type KafkaConfirmationPublisher struct {
	publisher *kafka.Publisher
}

func NewKafkaConfirmationPublisher(publisher *kafka.Publisher) *KafkaConfirmationPublisher {
	return &KafkaConfirmationPublisher{publisher: publisher}
}

func (p *KafkaConfirmationPublisher) PublishOrderConfirmation(ctx context.Context, confirmation events.OrderConfirmation) error {
	return p.publisher.Publish(ctx, confirmation.OrderReference, events.TypeOrderConfirmation, confirmation)
}
