package order

import (
	"context"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/inventory"
)

// CustomerDirectory looks up customers. A missing customer is reported with ok == false.
type CustomerDirectory interface {
	FindCustomerByID(ctx context.Context, id string) (customer events.Customer, ok bool, err error)
}

type InventoryLedger interface {
	Purchase(ctx context.Context, requests []inventory.PurchaseRequest) ([]inventory.PurchaseResponse, error)
}

type PaymentGateway interface {
	RequestPayment(ctx context.Context, req events.PaymentRequest) (int64, error)
}

type ConfirmationPublisher interface {
	PublishOrderConfirmation(ctx context.Context, confirmation events.OrderConfirmation) error
}

type Repository interface {
	CreateOrder(ctx context.Context, o Order) (int64, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	CreateOrderLine(ctx context.Context, line OrderLine) (int64, error)
	FindLinesByOrderID(ctx context.Context, orderID int64) ([]OrderLine, error)
}
