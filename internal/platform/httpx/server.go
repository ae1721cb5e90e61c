package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/platform/observability"
)

// Server wraps http.Server with tracing and graceful shutdown.
type Server struct {
	server *http.Server
	logger observability.Logger
}

func NewServer(addr, serviceName string, handler http.Handler, logger observability.Logger) *Server {
	instrumented := otelhttp.NewHandler(handler, serviceName,
		otelhttp.WithMeterProvider(otel.GetMeterProvider()),
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
	)

	return &Server{
		server: &http.Server{
			Addr:         addr,
			Handler:      instrumented,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks until the server stops. A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("🚀 Starting HTTP server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...", zap.String("addr", s.server.Addr))
	return s.server.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.server.Addr
}
