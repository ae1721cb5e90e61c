package inventory

import "context"

// Repository persists products.
type Repository interface {
	Create(ctx context.Context, req ProductRequest) (int64, error)
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	// FindAllByIDs returns the stored products among ids, ordered ascending by id.
	FindAllByIDs(ctx context.Context, ids []int64) ([]Product, error)
	UpdateQuantity(ctx context.Context, id int64, quantity float64) error
}
