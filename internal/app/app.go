package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pashhha/e-commerce-app/internal/platform/httpx"
)

const shutdownTimeout = 15 * time.Second

// Application holds all the components and manages the application lifecycle
type Application struct {
	ctx        context.Context
	cancel     context.CancelFunc
	container  *Container
	components *Components
}

// NewApplication creates the container and wires the components of one binary.
func NewApplication(ctx context.Context, serviceName string, wire Wiring) (*Application, error) {
	appCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	app := &Application{
		ctx:    appCtx,
		cancel: cancel,
	}

	container, err := NewContainer(app.ctx, serviceName)
	if err != nil {
		cancel()
		return nil, err
	}
	app.container = container

	components, err := wire(NewServiceFactory(container), app.ctx)
	if err != nil {
		container.Logger().Error("❌ Failed to wire service", zap.Error(err))
		app.Shutdown()
		return nil, err
	}
	app.components = components

	app.container.Logger().Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP and starts every runner until the context is cancelled or one of them fails.
func (app *Application) Run() error {
	g, ctx := errgroup.WithContext(app.ctx)

	if app.components.Router != nil {
		cfg := app.container.Config()
		srv := httpx.NewServer(cfg.HTTPAddr, cfg.ServiceName, app.components.Router, app.container.Logger())

		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	for _, runner := range app.components.Runners {
		g.Go(func() error { return runner.Start(ctx) })
	}

	return g.Wait()
}

// Shutdown gracefully shuts down all application components
func (app *Application) Shutdown() {
	if app.container != nil {
		app.container.Logger().Info("Starting application shutdown...")
	}

	if app.cancel != nil {
		app.cancel()
	}

	if app.container != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		app.container.Shutdown(shutdownCtx)
	}
}
