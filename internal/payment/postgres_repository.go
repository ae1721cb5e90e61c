package payment

import (
	"context"

	"github.com/pashhha/e-commerce-app/internal/platform/postgres"
)

var Schema = []string{
	`CREATE TABLE IF NOT EXISTS payment (
		id             BIGSERIAL PRIMARY KEY,
		amount         NUMERIC(38, 2) NOT NULL,
		payment_method VARCHAR(32) NOT NULL,
		order_id       BIGINT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO payment (amount, payment_method, order_id) VALUES ($1::numeric, $2, $3) RETURNING id`,
		p.Amount.String(), string(p.PaymentMethod), p.OrderID,
	).Scan(&id)
	return id, err
}
