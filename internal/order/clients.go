package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/inventory"
	"github.com/pashhha/e-commerce-app/internal/platform/httpx"
)

// CustomerClient reads customers from the customer service.
type CustomerClient struct {
	baseURL string
	client  *http.Client
}

func NewCustomerClient(baseURL string, client *http.Client) *CustomerClient {
	return &CustomerClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// FindCustomerByID maps a 404 to an absent customer. Any other failure is an error.
func (c *CustomerClient) FindCustomerByID(ctx context.Context, id string) (events.Customer, bool, error) {
	var customer events.Customer
	err := httpx.DoJSON(ctx, c.client, http.MethodGet, c.baseURL+"/"+url.PathEscape(id), nil, &customer)
	if err != nil {
		var statusErr *httpx.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return events.Customer{}, false, nil
		}
		return events.Customer{}, false, fmt.Errorf("%w: %w", ErrCustomerDirectoryUnavailable, err)
	}
	return customer, true, nil
}

// ProductClient calls the purchase endpoint of the product service.
type ProductClient struct {
	baseURL string
	client  *http.Client
}

func NewProductClient(baseURL string, client *http.Client) *ProductClient {
	return &ProductClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Purchase maps the ledger's own error codes back to the inventory errors.
// Every other non-2xx response is ErrInventoryUnavailable.
func (c *ProductClient) Purchase(ctx context.Context, requests []inventory.PurchaseRequest) ([]inventory.PurchaseResponse, error) {
	var purchased []inventory.PurchaseResponse
	err := httpx.DoJSON(ctx, c.client, http.MethodPost, c.baseURL+"/purchase", requests, &purchased)
	if err == nil {
		return purchased, nil
	}

	var statusErr *httpx.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusConflict {
		switch statusErr.Code {
		case inventory.CodeOutOfStock:
			return nil, fmt.Errorf("%w: %s", inventory.ErrOutOfStock, statusErr.Message)
		case inventory.CodeInsufficientStock:
			return nil, fmt.Errorf("%w: %s", inventory.ErrInsufficientStock, statusErr.Message)
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrInventoryUnavailable, err)
}

// PaymentClient submits payment requests to the payment service.
type PaymentClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentClient(baseURL string, client *http.Client) *PaymentClient {
	return &PaymentClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *PaymentClient) RequestPayment(ctx context.Context, req events.PaymentRequest) (int64, error) {
	var paymentID int64
	if err := httpx.DoJSON(ctx, c.client, http.MethodPost, c.baseURL, req, &paymentID); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}
	return paymentID, nil
}
