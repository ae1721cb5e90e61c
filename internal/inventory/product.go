package inventory

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pashhha/e-commerce-app/internal/events"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	AvailableQuantity float64         `json:"availableQuantity"`
	Price             decimal.Decimal `json:"price"`
	Category          Category        `json:"category"`
}

// ProductRequest carries the fields needed to register a new product.
type ProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	AvailableQuantity float64         `json:"availableQuantity"`
	Price             decimal.Decimal `json:"price"`
	CategoryID        int64           `json:"categoryId"`
}

func (r ProductRequest) Validate() error {
	var errs []error
	if r.Name == "" {
		errs = append(errs, errors.New("product name is required"))
	}
	if r.Description == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if r.AvailableQuantity <= 0 {
		errs = append(errs, errors.New("quantity should be positive"))
	}
	if !r.Price.IsPositive() {
		errs = append(errs, errors.New("price should be positive"))
	}
	if r.CategoryID <= 0 {
		errs = append(errs, errors.New("product category is required"))
	}
	return errors.Join(errs...)
}

type PurchaseRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

// PurchaseResponse is the snapshot of one purchased product. It shares the
// wire shape of the product entries carried by order confirmations.
type PurchaseResponse = events.PurchasedProduct

func newPurchaseResponse(p Product, quantity float64) PurchaseResponse {
	return PurchaseResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    quantity,
	}
}
