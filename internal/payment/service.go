package payment

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

type Service interface {
	ProcessPayment(ctx context.Context, req events.PaymentRequest) (int64, error)
}

type DefaultService struct {
	repo      Repository
	publisher ConfirmationPublisher
	logger    observability.Logger
	tracer    observability.Tracer
}

func NewService(repo Repository, publisher ConfirmationPublisher, logger observability.Logger, tracer observability.Tracer) Service {
	return &DefaultService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		tracer:    tracer,
	}
}

// ProcessPayment stores the payment, then publishes the confirmation.
// A publish failure leaves the payment stored.
func (s *DefaultService) ProcessPayment(ctx context.Context, req events.PaymentRequest) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "payment.process")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order.id", req.OrderID),
		attribute.String("order.reference", req.OrderReference),
		attribute.String("payment.method", req.PaymentMethod.String()),
	)

	if err := validateRequest(req); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPayment, err)
	}

	id, err := s.repo.Create(ctx, Payment{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		OrderID:       req.OrderID,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "saving payment failed")
		return 0, fmt.Errorf("saving payment: %w", err)
	}

	if err := s.publisher.PublishPaymentConfirmation(ctx, confirmationFor(req)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publishing confirmation failed")
		s.logger.Error("❌ Payment stored but confirmation not published",
			zap.Int64("payment_id", id),
			zap.String("reference", req.OrderReference),
			zap.Error(err),
		)
		return 0, fmt.Errorf("publishing payment confirmation: %w", err)
	}

	span.SetAttributes(attribute.Int64("payment.id", id))
	span.SetStatus(codes.Ok, "payment processed")
	s.logger.Info("💰 Payment processed",
		zap.Int64("payment_id", id),
		zap.Int64("order_id", req.OrderID),
		zap.String("reference", req.OrderReference),
	)
	return id, nil
}
