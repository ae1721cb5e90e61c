package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

// Dispatcher records every confirmation it receives and emails the customer.
type Dispatcher struct {
	repo   Repository
	sender EmailSender
	logger observability.Logger
	tracer observability.Tracer
	sent   metric.Int64Counter
	now    func() time.Time
}

func NewDispatcher(repo Repository, sender EmailSender, logger observability.Logger, tracer observability.Tracer, meter metric.Meter) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		sender: sender,
		logger: logger,
		tracer: tracer,
		sent:   observability.Counter(meter, "notifications.sent", "Notification emails sent"),
		now:    time.Now,
	}
}

func (d *Dispatcher) HandleOrderConfirmation(ctx context.Context, confirmation events.OrderConfirmation) error {
	ctx, span := d.start(ctx, TypeOrderConfirmation, confirmation.OrderReference)
	defer span.End()

	snapshot := confirmation.Clone()
	err := d.record(ctx, Notification{Type: TypeOrderConfirmation, OrderConfirmation: &snapshot})
	if err == nil {
		customer := confirmation.Customer
		err = d.sender.SendOrderConfirmation(ctx, customer.Email, customer.FullName(),
			confirmation.TotalAmount, confirmation.OrderReference, confirmation.Products)
	}
	return d.finish(ctx, span, TypeOrderConfirmation, confirmation.OrderReference, err)
}

func (d *Dispatcher) HandlePaymentConfirmation(ctx context.Context, confirmation events.PaymentConfirmation) error {
	ctx, span := d.start(ctx, TypePaymentConfirmation, confirmation.OrderReference)
	defer span.End()

	snapshot := confirmation
	err := d.record(ctx, Notification{Type: TypePaymentConfirmation, PaymentConfirmation: &snapshot})
	if err == nil {
		name := events.Customer{Firstname: confirmation.CustomerFirstname, Lastname: confirmation.CustomerLastname}.FullName()
		err = d.sender.SendPaymentConfirmation(ctx, confirmation.CustomerEmail, name,
			confirmation.Amount, confirmation.OrderReference)
	}
	return d.finish(ctx, span, TypePaymentConfirmation, confirmation.OrderReference, err)
}

func (d *Dispatcher) record(ctx context.Context, n Notification) error {
	n.ID = uuid.New()
	n.NotificationDate = d.now()
	if err := d.repo.Save(ctx, n); err != nil {
		return fmt.Errorf("saving %s notification: %w", n.Type, err)
	}
	return nil
}

func (d *Dispatcher) start(ctx context.Context, typ Type, reference string) (context.Context, trace.Span) {
	ctx, span := d.tracer.Start(ctx, "notification.handle")
	span.SetAttributes(
		attribute.String("notification.type", string(typ)),
		attribute.String("order.reference", reference),
	)
	d.logger.Info("📨 Consuming confirmation", zap.String("type", string(typ)), zap.String("reference", reference))
	return ctx, span
}

func (d *Dispatcher) finish(ctx context.Context, span trace.Span, typ Type, reference string, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.Error("❌ Notification failed",
			zap.String("type", string(typ)),
			zap.String("reference", reference),
			zap.Error(err),
		)
		return err
	}
	d.sent.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(typ))))
	span.SetStatus(codes.Ok, "notification sent")
	return nil
}
