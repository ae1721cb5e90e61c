package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/pashhha/e-commerce-app/internal/events"
)

type Type string

const (
	TypeOrderConfirmation   Type = "ORDER_CONFIRMATION"
	TypePaymentConfirmation Type = "PAYMENT_CONFIRMATION"
)

// Notification is the stored record of one consumed confirmation event.
// Exactly one of the confirmation fields is set, matching Type.
type Notification struct {
	ID                  uuid.UUID                   `json:"id"`
	Type                Type                        `json:"type"`
	NotificationDate    time.Time                   `json:"notificationDate"`
	OrderConfirmation   *events.OrderConfirmation   `json:"orderConfirmation,omitempty"`
	PaymentConfirmation *events.PaymentConfirmation `json:"paymentConfirmation,omitempty"`
}
