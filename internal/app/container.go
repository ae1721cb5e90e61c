package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/config"
	"github.com/pashhha/e-commerce-app/internal/platform/httpx"
	"github.com/pashhha/e-commerce-app/internal/platform/kafka"
	"github.com/pashhha/e-commerce-app/internal/platform/observability"
	"github.com/pashhha/e-commerce-app/internal/platform/postgres"
)

// Container holds expensive-to-create singleton resources and dependencies.
// Resources are opened on first use so each binary only connects to what it needs.
type Container struct {
	config         *config.Config
	logger         *zap.Logger
	tracer         observability.Tracer
	meter          metric.Meter
	tracerProvider trace.TracerProvider
	otelShutdown   func(context.Context) error

	mu         sync.Mutex
	pool       *pgxpool.Pool
	redis      *redis.Client
	httpClient *http.Client
	producers  []kafka.Producer
	consumers  []kafka.Consumer
}

// NewContainer loads configuration and sets up logging and telemetry.
func NewContainer(ctx context.Context, serviceName string) (*Container, error) {
	cfg, err := config.LoadConfig(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	c := &Container{
		config: cfg,
		logger: observability.NewLogger(cfg.ServiceName, false),
	}
	c.setupObservability(ctx)
	return c, nil
}

// setupObservability configures OpenTelemetry when an endpoint is configured.
// Telemetry failures are logged and never stop the service.
func (c *Container) setupObservability(ctx context.Context) {
	otel.SetTextMapPropagator(observability.NewPropagator())

	if c.config.OtelEnabled() {
		tp, shutdown, err := observability.SetupSDK(ctx, c.config)
		if err != nil {
			c.logger.Error("⚠️ Failed to setup OpenTelemetry SDK completely", zap.Error(err))
		}
		c.otelShutdown = shutdown
		if tp != nil {
			c.tracerProvider = tp
		}

		c.logger = observability.NewLogger(c.config.ServiceName, true)
		c.logger.Info("Logger re-initialized with OpenTelemetry bridge")
	}

	if c.tracerProvider == nil {
		c.tracerProvider = otel.GetTracerProvider()
	}
	c.tracer = c.tracerProvider.Tracer(c.config.ServiceName)
	c.meter = otel.Meter(c.config.ServiceName)
}

// Postgres returns the shared pool, connecting on first call.
func (c *Container) Postgres(ctx context.Context) (*pgxpool.Pool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pool != nil {
		return c.pool, nil
	}

	pool, err := postgres.NewPool(ctx, c.config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	c.pool = pool
	c.logger.Info("🐘 Connected to Postgres")
	return pool, nil
}

// Redis returns the shared client, or nil when REDIS_ADDR is not set.
func (c *Container) Redis() *redis.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.config.RedisAddr == "" {
		return nil
	}
	if c.redis == nil {
		c.redis = redis.NewClient(&redis.Options{Addr: c.config.RedisAddr})
	}
	return c.redis
}

func (c *Container) HTTPClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.httpClient == nil {
		c.httpClient = httpx.NewClient(c.config.HTTPClientTimeout)
	}
	return c.httpClient
}

// NewProducer creates a writer for topic; it is closed on Shutdown.
func (c *Container) NewProducer(topic string) (kafka.Producer, error) {
	producer, err := kafka.NewProducer(c.config.KafkaBrokers, topic, c.config.ServiceName, c.tracerProvider)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.producers = append(c.producers, producer)
	c.mu.Unlock()
	return producer, nil
}

// NewConsumer creates a reader for topic in the service's group; it is closed on Shutdown.
func (c *Container) NewConsumer(topic string) (kafka.Consumer, error) {
	consumer, err := kafka.NewConsumer(c.config.KafkaBrokers, topic, c.config.KafkaGroupID)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.consumers = append(c.consumers, consumer)
	c.mu.Unlock()
	return consumer, nil
}

// Shutdown gracefully shuts down all infrastructure components
func (c *Container) Shutdown(ctx context.Context) {
	c.logger.Info("Shutting down infrastructure...")

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, consumer := range c.consumers {
		if err := consumer.Close(); err != nil {
			c.logger.Error("Failed to close message consumer", zap.Error(err))
		}
	}
	for _, producer := range c.producers {
		if err := producer.Close(); err != nil {
			c.logger.Error("Failed to close message producer", zap.Error(err))
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}

	if c.otelShutdown != nil {
		if err := c.otelShutdown(ctx); err != nil {
			c.logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}

	c.logger.Info("Infrastructure shutdown complete")
	// stdout sync fails on some platforms; nothing left to report it to
	_ = c.logger.Sync()
}

func (c *Container) Config() *config.Config       { return c.config }
func (c *Container) Logger() observability.Logger { return c.logger }
func (c *Container) Tracer() observability.Tracer { return c.tracer }
func (c *Container) Meter() metric.Meter          { return c.meter }

// migrate applies the given schema on the shared pool.
func (c *Container) migrate(ctx context.Context, schema []string) (*pgxpool.Pool, error) {
	pool, err := c.Postgres(ctx)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool, schema...); err != nil {
		return nil, err
	}
	return pool, nil
}
