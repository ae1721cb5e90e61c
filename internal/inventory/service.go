package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

// Service defines the product ledger operations.
type Service interface {
	CreateProduct(ctx context.Context, req ProductRequest) (int64, error)
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Purchase(ctx context.Context, requests []PurchaseRequest) ([]PurchaseResponse, error)
}

// DefaultService handles product stock on top of a Repository.
type DefaultService struct {
	repo      Repository
	logger    observability.Logger
	tracer    observability.Tracer
	purchases metric.Int64Counter
}

func NewService(repo Repository, logger observability.Logger, tracer observability.Tracer, meter metric.Meter) Service {
	return &DefaultService{
		repo:      repo,
		logger:    logger,
		tracer:    tracer,
		purchases: observability.Counter(meter, "inventory.purchases", "Purchase calls by outcome"),
	}
}

func (s *DefaultService) CreateProduct(ctx context.Context, req ProductRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidProduct, err)
	}
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("creating product: %w", err)
	}
	s.logger.Info("📦 Product created", zap.Int64("product_id", id), zap.String("name", req.Name))
	return id, nil
}

func (s *DefaultService) FindByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DefaultService) FindAll(ctx context.Context) ([]Product, error) {
	return s.repo.FindAll(ctx)
}

// Purchase checks that every requested product exists, then walks the requests in
// ascending id order, decrementing the stored product each one names.
// A shortfall aborts the batch but keeps the decrements already applied.
func (s *DefaultService) Purchase(ctx context.Context, requests []PurchaseRequest) ([]PurchaseResponse, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.purchase")
	defer span.End()

	span.SetAttributes(attribute.Int("inventory.requested_items", len(requests)))

	responses, err := s.purchase(ctx, requests)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome(err))))
		s.logger.Warn("⚠️ Purchase rejected", zap.Error(err), zap.Int("items", len(requests)))
		return nil, err
	}

	span.SetStatus(codes.Ok, "products purchased")
	s.purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	s.logger.Info("✅ Products purchased", zap.Int("items", len(responses)))
	return responses, nil
}

func (s *DefaultService) purchase(ctx context.Context, requests []PurchaseRequest) ([]PurchaseResponse, error) {
	ids := distinctIDs(requests)

	stored, err := s.repo.FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	if len(stored) != len(ids) {
		return nil, ErrOutOfStock
	}

	sorted := make([]PurchaseRequest, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	// stored holds each distinct id once, ascending; repeated requests for one id
	// all land on the same row and decrement it again.
	responses := make([]PurchaseResponse, 0, len(sorted))
	j := 0
	for _, requested := range sorted {
		for j < len(stored) && stored[j].ID < requested.ProductID {
			j++
		}
		if j == len(stored) || stored[j].ID != requested.ProductID {
			return nil, ErrOutOfStock
		}
		product := &stored[j]

		if product.AvailableQuantity < requested.Quantity {
			return nil, &InsufficientStockError{ProductID: requested.ProductID}
		}

		product.AvailableQuantity -= requested.Quantity
		if err := s.repo.UpdateQuantity(ctx, product.ID, product.AvailableQuantity); err != nil {
			return nil, fmt.Errorf("updating stock of product %d: %w", product.ID, err)
		}
		responses = append(responses, newPurchaseResponse(*product, requested.Quantity))
	}
	return responses, nil
}

func distinctIDs(requests []PurchaseRequest) []int64 {
	seen := make(map[int64]struct{}, len(requests))
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		ids = append(ids, r.ProductID)
	}
	return ids
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrOutOfStock):
		return CodeOutOfStock
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	default:
		return "error"
	}
}
