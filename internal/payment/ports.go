package payment

import (
	"context"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/kafka"
)

type Repository interface {
	Create(ctx context.Context, p Payment) (int64, error)
}

type ConfirmationPublisher interface {
	PublishPaymentConfirmation(ctx context.Context, confirmation events.PaymentConfirmation) error
}

// KafkaConfirmationPublisher writes payment confirmations keyed by order reference.
type KafkaConfirmationPublisher struct {
	publisher *kafka.Publisher
}

func NewKafkaConfirmationPublisher(publisher *kafka.Publisher) *KafkaConfirmationPublisher {
	return &KafkaConfirmationPublisher{publisher: publisher}
}

func (p *KafkaConfirmationPublisher) PublishPaymentConfirmation(ctx context.Context, confirmation events.PaymentConfirmation) error {
	return p.publisher.Publish(ctx, confirmation.OrderReference, events.TypePaymentConfirmation, confirmation)
}
