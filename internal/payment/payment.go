package payment

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pashhha/e-commerce-app/internal/events"
)

var ErrInvalidPayment = errors.New("invalid payment request")

// Payment records an amount paid for an order. Customer data is deliberately not stored.
type Payment struct {
	ID            int64                `json:"id"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod events.PaymentMethod `json:"paymentMethod"`
	OrderID       int64                `json:"orderId"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func validateRequest(req events.PaymentRequest) error {
	var errs []error
	if !req.Amount.IsPositive() {
		errs = append(errs, errors.New("amount should be positive"))
	}
	if !req.PaymentMethod.Valid() {
		errs = append(errs, errors.New("payment method is required"))
	}
	if req.OrderID <= 0 {
		errs = append(errs, errors.New("order id is required"))
	}
	if strings.TrimSpace(req.Customer.Firstname) == "" {
		errs = append(errs, errors.New("firstname is required"))
	}
	if strings.TrimSpace(req.Customer.Lastname) == "" {
		errs = append(errs, errors.New("lastname is required"))
	}
	if _, err := mail.ParseAddress(req.Customer.Email); err != nil {
		errs = append(errs, fmt.Errorf("email is not correctly formatted: %q", req.Customer.Email))
	}
	return errors.Join(errs...)
}

func confirmationFor(req events.PaymentRequest) events.PaymentConfirmation {
	return events.PaymentConfirmation{
		OrderReference:    req.OrderReference,
		Amount:            req.Amount,
		PaymentMethod:     req.PaymentMethod,
		CustomerFirstname: req.Customer.Firstname,
		CustomerLastname:  req.Customer.Lastname,
		CustomerEmail:     req.Customer.Email,
	}
}
