package app

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"

	"github.com/pashhha/e-commerce-app/internal/config"
	"github.com/pashhha/e-commerce-app/internal/customer"
	"github.com/pashhha/e-commerce-app/internal/inventory"
	"github.com/pashhha/e-commerce-app/internal/notification"
	"github.com/pashhha/e-commerce-app/internal/order"
	"github.com/pashhha/e-commerce-app/internal/payment"
	"github.com/pashhha/e-commerce-app/internal/platform/httpx"
	"github.com/pashhha/e-commerce-app/internal/platform/kafka"
)

// Runner is a long-running component started by Application.Run.
type Runner interface {
	Start(ctx context.Context) error
}

// Components is what a binary runs: an optional HTTP router and any number of background runners.
type Components struct {
	Router  chi.Router
	Runners []Runner
}

// Wiring builds the components of one binary.
type Wiring func(f *ServiceFactory, ctx context.Context) (*Components, error)

// ServiceFactory creates business logic services with their dependencies
type ServiceFactory struct {
	c *Container
}

func NewServiceFactory(c *Container) *ServiceFactory {
	return &ServiceFactory{c: c}
}

func (f *ServiceFactory) router(mount func(chi.Router)) chi.Router {
	r := httpx.NewRouter(f.c.Logger())
	if mount != nil {
		r.Route(httpx.APIPrefix, mount)
	}
	return r
}

func (f *ServiceFactory) ProductService(ctx context.Context) (*Components, error) {
	pool, err := f.c.migrate(ctx, inventory.Schema)
	if err != nil {
		return nil, err
	}

	service := inventory.NewService(inventory.NewPostgresRepository(pool), f.c.Logger(), f.c.Tracer(), f.c.Meter())
	handler := inventory.NewHandler(service, f.c.Logger())
	return &Components{Router: f.router(handler.Routes)}, nil
}

func (f *ServiceFactory) CustomerService(ctx context.Context) (*Components, error) {
	pool, err := f.c.migrate(ctx, customer.Schema)
	if err != nil {
		return nil, err
	}

	service := customer.NewService(customer.NewPostgresRepository(pool), f.c.Logger(), f.c.Tracer())
	handler := customer.NewHandler(service, f.c.Logger())
	return &Components{Router: f.router(handler.Routes)}, nil
}

func (f *ServiceFactory) OrderService(ctx context.Context) (*Components, error) {
	cfg := f.c.Config()

	pool, err := f.c.migrate(ctx, order.Schema)
	if err != nil {
		return nil, err
	}

	producer, err := f.c.NewProducer(config.OrderTopic)
	if err != nil {
		return nil, err
	}

	client := f.c.HTTPClient()
	var customers order.CustomerDirectory = order.NewCustomerClient(cfg.CustomerServiceURL, client)
	if rdb := f.c.Redis(); rdb != nil {
		customers = order.NewCachedCustomerDirectory(customers, rdb, cfg.CustomerCacheTTL, f.c.Logger())
	}

	service := order.NewService(order.Dependencies{
		Repository: order.NewPostgresRepository(pool),
		Customers:  customers,
		Inventory:  order.NewProductClient(cfg.ProductServiceURL, client),
		Payments:   order.NewPaymentClient(cfg.PaymentServiceURL, client),
		Publisher: order.NewKafkaConfirmationPublisher(
			kafka.NewPublisher(producer, config.OrderTopic, f.c.Logger()),
		),
		Logger: f.c.Logger(),
		Tracer: f.c.Tracer(),
		Meter:  f.c.Meter(),
	})
	handler := order.NewHandler(service, f.c.Logger())
	return &Components{Router: f.router(handler.Routes)}, nil
}

func (f *ServiceFactory) PaymentService(ctx context.Context) (*Components, error) {
	pool, err := f.c.migrate(ctx, payment.Schema)
	if err != nil {
		return nil, err
	}

	producer, err := f.c.NewProducer(config.PaymentTopic)
	if err != nil {
		return nil, err
	}

	publisher := payment.NewKafkaConfirmationPublisher(kafka.NewPublisher(producer, config.PaymentTopic, f.c.Logger()))
	service := payment.NewService(payment.NewPostgresRepository(pool), publisher, f.c.Logger(), f.c.Tracer())
	handler := payment.NewHandler(service, f.c.Logger())
	return &Components{Router: f.router(handler.Routes)}, nil
}

// NotificationService reads both confirmation topics concurrently and exposes only /health.
func (f *ServiceFactory) NotificationService(ctx context.Context) (*Components, error) {
	cfg := f.c.Config()

	pool, err := f.c.migrate(ctx, notification.Schema)
	if err != nil {
		return nil, err
	}

	sender, err := notification.NewSMTPSender(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		Timeout:  cfg.HTTPClientTimeout,
	}, f.c.Logger())
	if err != nil {
		return nil, err
	}

	dispatcher := notification.NewDispatcher(notification.NewPostgresRepository(pool), sender, f.c.Logger(), f.c.Tracer(), f.c.Meter())

	topics := []struct {
		name    string
		handler kafka.MessageHandler
	}{
		{config.OrderTopic, dispatcher.OrderConfirmationHandler()},
		{config.PaymentTopic, dispatcher.PaymentConfirmationHandler()},
	}

	components := &Components{Router: f.router(nil)}
	for _, topic := range topics {
		consumer, err := f.c.NewConsumer(topic.name)
		if err != nil {
			return nil, fmt.Errorf("consumer for %s: %w", topic.name, err)
		}
		components.Runners = append(components.Runners,
			kafka.NewConsumerService(topic.name, consumer, topic.handler, f.c.Logger()))
	}
	return components, nil
}
