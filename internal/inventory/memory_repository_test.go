package inventory

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// memoryRepository is an in-memory Repository used by the package tests.
type memoryRepository struct {
	mu        sync.Mutex
	products  map[int64]Product
	nextID    int64
	updates   []int64
	updateErr error
}

func newMemoryRepository(products ...Product) *memoryRepository {
	repo := &memoryRepository{products: make(map[int64]Product)}
	for _, p := range products {
		repo.products[p.ID] = p
		if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
	}
	return repo
}

func (r *memoryRepository) Create(_ context.Context, req ProductRequest) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.products[r.nextID] = Product{
		ID:                r.nextID,
		Name:              req.Name,
		Description:       req.Description,
		AvailableQuantity: req.AvailableQuantity,
		Price:             req.Price,
		Category:          Category{ID: req.CategoryID},
	}
	return r.nextID, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(Product) bool { return true }), nil
}

func (r *memoryRepository) FindAllByIDs(_ context.Context, ids []int64) ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.sorted(func(p Product) bool { return wanted[p.ID] }), nil
}

func (r *memoryRepository) UpdateQuantity(_ context.Context, id int64, quantity float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	p, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.AvailableQuantity = quantity
	r.products[id] = p
	r.updates = append(r.updates, id)
	return nil
}

func (r *memoryRepository) quantity(id int64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id].AvailableQuantity
}

func (r *memoryRepository) sorted(keep func(Product) bool) []Product {
	var out []Product
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var errDatabase = errors.New("database unavailable")
