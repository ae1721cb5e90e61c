package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

type Service interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (int64, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindOrderLines(ctx context.Context, orderID int64) ([]OrderLine, error)
}

// Dependencies groups the collaborators of the order service.
type Dependencies struct {
	Repository Repository
	Customers  CustomerDirectory
	Inventory  InventoryLedger
	Payments   PaymentGateway
	Publisher  ConfirmationPublisher
	Logger     observability.Logger
	Tracer     observability.Tracer
	Meter      metric.Meter
}

type DefaultService struct {
	repo      Repository
	customers CustomerDirectory
	inventory InventoryLedger
	payments  PaymentGateway
	publisher ConfirmationPublisher
	logger    observability.Logger
	tracer    observability.Tracer
	placed    metric.Int64Counter
	failed    metric.Int64Counter
}

func NewService(deps Dependencies) Service {
	return &DefaultService{
		repo:      deps.Repository,
		customers: deps.Customers,
		inventory: deps.Inventory,
		payments:  deps.Payments,
		publisher: deps.Publisher,
		logger:    deps.Logger,
		tracer:    deps.Tracer,
		placed:    observability.Counter(deps.Meter, "orders.placed", "Orders placed successfully"),
		failed:    observability.Counter(deps.Meter, "orders.failed", "Order placements that stopped at a step"),
	}
}

// PlaceOrder runs the placement workflow and returns the new order id.
// Failures are reported as *StepError.
func (s *DefaultService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	if strings.TrimSpace(req.Reference) == "" {
		req.Reference = "ORD-" + strings.ToUpper(uuid.NewString()[:8])
	}

	ctx, span := s.tracer.Start(ctx, "order.place")
	defer span.End()
	span.SetAttributes(placementAttributes(req)...)

	s.logger.Info("🛒 Placing order",
		zap.String("reference", req.Reference),
		zap.String("customer_id", req.CustomerID),
		zap.Int("items", len(req.Products)),
	)

	p := &placement{svc: s, req: req}
	orderID, err := p.execute(ctx)
	if err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			s.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("step", string(stepErr.Step))))
			span.SetAttributes(
				attribute.String("order.failed_step", string(stepErr.Step)),
				attribute.Bool("order.stock_committed", stepErr.Committed),
			)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("❌ Order placement failed", zap.String("reference", req.Reference), zap.Error(err))
		return 0, err
	}

	s.placed.Add(ctx, 1)
	span.SetAttributes(attribute.Int64("order.id", orderID))
	span.SetStatus(codes.Ok, "order placed")
	s.logger.Info("✅ Order placed", zap.String("reference", req.Reference), zap.Int64("order_id", orderID))
	return orderID, nil
}

func (s *DefaultService) FindAll(ctx context.Context) ([]Order, error) {
	return s.repo.FindAll(ctx)
}

func (s *DefaultService) FindByID(ctx context.Context, id int64) (*Order, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DefaultService) FindOrderLines(ctx context.Context, orderID int64) ([]OrderLine, error) {
	return s.repo.FindLinesByOrderID(ctx, orderID)
}
