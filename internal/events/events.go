// Package events holds the payloads exchanged between services, over HTTP and on Kafka topics.
// Every type here is a plain value; publishers encode a copy at send time.
package events

import "github.com/shopspring/decimal"

// Event type names carried in the event-type message header.
const (
	TypeOrderConfirmation   = "OrderConfirmation"
	TypePaymentConfirmation = "PaymentConfirmation"
)

// Customer is the customer snapshot embedded in requests and events.
type Customer struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// FullName joins first and last name the way the emails greet the customer.
func (c Customer) FullName() string {
	switch {
	case c.Firstname == "":
		return c.Lastname
	case c.Lastname == "":
		return c.Firstname
	}
	return c.Firstname + " " + c.Lastname
}

// PurchasedProduct is a snapshot of one product bought as part of an order.
type PurchasedProduct struct {
	ProductID   int64           `json:"productId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    float64         `json:"quantity"`
}

// OrderConfirmation is published on order-topic once an order is placed.
type OrderConfirmation struct {
	OrderReference string             `json:"orderReference"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	PaymentMethod  PaymentMethod      `json:"paymentMethod"`
	Customer       Customer           `json:"customer"`
	Products       []PurchasedProduct `json:"products"`
}

// PaymentConfirmation is published on payment-topic once a payment is recorded.
type PaymentConfirmation struct {
	OrderReference    string          `json:"orderReference"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	CustomerFirstname string          `json:"customerFirstname"`
	CustomerLastname  string          `json:"customerLastname"`
	CustomerEmail     string          `json:"customerEmail"`
}

// PaymentRequest is sent by the order service to the payment service.
type PaymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	OrderID        int64           `json:"orderId"`
	OrderReference string          `json:"orderReference"`
	Customer       Customer        `json:"customer"`
}

// Clone returns a copy that shares no slice memory with c.
func (c OrderConfirmation) Clone() OrderConfirmation {
	c.Products = append([]PurchasedProduct(nil), c.Products...)
	return c
}
