package inventory

import (
	"errors"
	"fmt"
)

// Error codes written in HTTP error bodies and mapped back by remote callers.
const (
	CodeOutOfStock        = "out_of_stock"
	CodeInsufficientStock = "insufficient_stock"
	CodeProductNotFound   = "product_not_found"
	CodeCategoryNotFound  = "category_not_found"
)

var (
	ErrOutOfStock        = errors.New("one or more products does not exist")
	ErrInsufficientStock = errors.New("insufficient stock quantity")
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidProduct    = errors.New("invalid product")
)

// InsufficientStockError names the product whose stock could not cover the request.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock quantity for product with id %d", e.ProductID)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
