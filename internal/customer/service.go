package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

type Service interface {
	Create(ctx context.Context, req Request) (string, error)
	Update(ctx context.Context, req Request) error
	FindAll(ctx context.Context) ([]Customer, error)
	Exists(ctx context.Context, id string) (bool, error)
	FindByID(ctx context.Context, id string) (*Customer, error)
	Delete(ctx context.Context, id string) error
}

type DefaultService struct {
	repo   Repository
	logger observability.Logger
	tracer observability.Tracer
	newID  func() string
}

func NewService(repo Repository, logger observability.Logger, tracer observability.Tracer) Service {
	return &DefaultService{
		repo:   repo,
		logger: logger,
		tracer: tracer,
		newID:  uuid.NewString,
	}
}

func (s *DefaultService) Create(ctx context.Context, req Request) (string, error) {
	if err := req.ValidateCreate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCustomer, err)
	}

	c := Customer{ID: s.newID()}
	req.merge(&c)
	if err := s.repo.Save(ctx, c); err != nil {
		return "", fmt.Errorf("saving customer: %w", err)
	}

	s.logger.Info("👤 Customer created", zap.String("customer_id", c.ID))
	return c.ID, nil
}

// Update overwrites only the fields that are not blank in req.
func (s *DefaultService) Update(ctx context.Context, req Request) error {
	ctx, span := s.tracer.Start(ctx, "customer.update")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", req.ID))

	if err := req.ValidateUpdate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCustomer, err)
	}

	c, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return fmt.Errorf("cannot update customer %s: %w", req.ID, err)
		}
		return err
	}

	req.merge(c)
	if err := s.repo.Save(ctx, *c); err != nil {
		return fmt.Errorf("saving customer: %w", err)
	}
	s.logger.Info("👤 Customer updated", zap.String("customer_id", c.ID))
	return nil
}

func (s *DefaultService) FindAll(ctx context.Context) ([]Customer, error) {
	return s.repo.FindAll(ctx)
}

func (s *DefaultService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrCustomerNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *DefaultService) FindByID(ctx context.Context, id string) (*Customer, error) {
	ctx, span := s.tracer.Start(ctx, "customer.find")
	defer span.End()
	span.SetAttributes(attribute.String("customer.id", id))

	return s.repo.FindByID(ctx, id)
}

func (s *DefaultService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting customer %s: %w", id, err)
	}
	s.logger.Info("🗑️ Customer deleted", zap.String("customer_id", id))
	return nil
}
