package main

import (
	"context"
	stdlog "log"

	"github.com/pashhha/e-commerce-app/internal/app"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	application, err := app.NewApplication(ctx, "payment-service", (*app.ServiceFactory).PaymentService)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	return application.Run()
}
