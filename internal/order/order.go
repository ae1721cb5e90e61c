package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/inventory"
)

// Order is written once by PlaceOrder and never updated.
type Order struct {
	ID            int64                `json:"id"`
	Reference     string               `json:"reference"`
	TotalAmount   decimal.Decimal      `json:"amount"`
	PaymentMethod events.PaymentMethod `json:"paymentMethod"`
	CustomerID    string               `json:"customerId"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type OrderLine struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"orderId"`
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// PlaceOrderRequest is the input of the placement workflow.
type PlaceOrderRequest struct {
	Reference     string                      `json:"reference"`
	Amount        decimal.Decimal             `json:"amount"`
	PaymentMethod events.PaymentMethod        `json:"paymentMethod"`
	CustomerID    string                      `json:"customerId"`
	Products      []inventory.PurchaseRequest `json:"products"`
}

func (r PlaceOrderRequest) Validate() error {
	var errs []error
	if !r.Amount.IsPositive() {
		errs = append(errs, errors.New("order amount should be positive"))
	}
	if !r.PaymentMethod.Valid() {
		errs = append(errs, errors.New("payment method should be precised"))
	}
	if strings.TrimSpace(r.CustomerID) == "" {
		errs = append(errs, errors.New("customer should be present"))
	}
	if len(r.Products) == 0 {
		errs = append(errs, errors.New("at least one product should be purchased"))
	}
	seen := make(map[int64]struct{}, len(r.Products))
	for i, p := range r.Products {
		if p.ProductID <= 0 {
			errs = append(errs, fmt.Errorf("product %d: productId is mandatory", i))
		}
		if _, dup := seen[p.ProductID]; dup {
			errs = append(errs, fmt.Errorf("product %d: product %d is listed more than once", i, p.ProductID))
		}
		seen[p.ProductID] = struct{}{}
		if p.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("product %d: quantity should be positive", i))
		}
	}
	return errors.Join(errs...)
}
