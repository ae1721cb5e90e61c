package order

import (
	"context"
	"errors"
	"sync"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/inventory"
)

var errUnavailable = errors.New("connection refused")

type fakeDirectory struct {
	customers map[string]events.Customer
	err       error
	calls     int
}

func (d *fakeDirectory) FindCustomerByID(_ context.Context, id string) (events.Customer, bool, error) {
	d.calls++
	if d.err != nil {
		return events.Customer{}, false, d.err
	}
	c, ok := d.customers[id]
	return c, ok, nil
}

type fakeLedger struct {
	responses []inventory.PurchaseResponse
	err       error
	calls     [][]inventory.PurchaseRequest
}

func (l *fakeLedger) Purchase(_ context.Context, requests []inventory.PurchaseRequest) ([]inventory.PurchaseResponse, error) {
	l.calls = append(l.calls, requests)
	if l.err != nil {
		return nil, l.err
	}
	return l.responses, nil
}

type fakePayments struct {
	requests []events.PaymentRequest
	err      error
}

func (p *fakePayments) RequestPayment(_ context.Context, req events.PaymentRequest) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	p.requests = append(p.requests, req)
	return int64(len(p.requests)), nil
}

type fakePublisher struct {
	published []events.OrderConfirmation
	err       error
}

func (p *fakePublisher) PublishOrderConfirmation(_ context.Context, c events.OrderConfirmation) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, c)
	return nil
}

type memoryRepository struct {
	mu     sync.Mutex
	orders []Order
	lines  []OrderLine
}

func (r *memoryRepository) CreateOrder(_ context.Context, o Order) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = int64(len(r.orders) + 1)
	r.orders = append(r.orders, o)
	return o.ID, nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Order(nil), r.orders...), nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *memoryRepository) CreateOrderLine(_ context.Context, line OrderLine) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line.ID = int64(len(r.lines) + 1)
	r.lines = append(r.lines, line)
	return line.ID, nil
}

func (r *memoryRepository) FindLinesByOrderID(_ context.Context, orderID int64) ([]OrderLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []OrderLine
	for _, l := range r.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}
