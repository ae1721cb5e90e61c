package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pashhha/e-commerce-app/internal/platform/postgres"
)

type Repository interface {
	Save(ctx context.Context, n Notification) error
}

var Schema = []string{
	`CREATE TABLE IF NOT EXISTS notification (
		id                   UUID PRIMARY KEY,
		type                 VARCHAR(32) NOT NULL,
		notification_date    TIMESTAMPTZ NOT NULL,
		order_confirmation   JSONB,
		payment_confirmation JSONB
	)`,
}

// PostgresRepository keeps the embedded confirmation as a JSONB document.
type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, n Notification) error {
	orderDoc, err := jsonDocument(n.OrderConfirmation, n.OrderConfirmation != nil)
	if err != nil {
		return err
	}
	paymentDoc, err := jsonDocument(n.PaymentConfirmation, n.PaymentConfirmation != nil)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO notification (id, type, notification_date, order_confirmation, payment_confirmation)
		 VALUES ($1::uuid, $2, $3, $4::jsonb, $5::jsonb)`,
		n.ID.String(), string(n.Type), n.NotificationDate, orderDoc, paymentDoc,
	)
	return err
}

func jsonDocument(v any, present bool) (*string, error) {
	if !present {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding notification payload: %w", err)
	}
	doc := string(raw)
	return &doc, nil
}
