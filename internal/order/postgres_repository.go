package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/postgres"
)

var Schema = []string{
	`CREATE TABLE IF NOT EXISTS customer_order (
		id             BIGSERIAL PRIMARY KEY,
		reference      VARCHAR(255) NOT NULL,
		total_amount   NUMERIC(38, 2) NOT NULL,
		payment_method VARCHAR(32) NOT NULL,
		customer_id    VARCHAR(255) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS customer_line (
		id         BIGSERIAL PRIMARY KEY,
		order_id   BIGINT NOT NULL REFERENCES customer_order (id),
		product_id BIGINT NOT NULL,
		quantity   DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS customer_line_order_id_idx ON customer_line (order_id)`,
}

const orderColumns = `id, reference, total_amount::text, payment_method, customer_id, created_at, updated_at`

type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, o Order) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO customer_order (reference, total_amount, payment_method, customer_id)
		 VALUES ($1, $2::numeric, $3, $4) RETURNING id`,
		o.Reference, o.TotalAmount.String(), string(o.PaymentMethod), o.CustomerID,
	).Scan(&id)
	return id, err
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM customer_order ORDER BY id`)
	if err != nil {
		return nil, err
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("reading orders: %w", err)
	}
	return orders, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM customer_order WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) CreateOrderLine(ctx context.Context, line OrderLine) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO customer_line (order_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING id`,
		line.OrderID, line.ProductID, line.Quantity,
	).Scan(&id)
	return id, err
}

func (r *PostgresRepository) FindLinesByOrderID(ctx context.Context, orderID int64) ([]OrderLine, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, order_id, product_id, quantity FROM customer_line WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByPos[OrderLine])
	if err != nil {
		return nil, fmt.Errorf("reading order lines: %w", err)
	}
	return lines, nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o      Order
		amount string
		method string
	)
	if err := row.Scan(&o.ID, &o.Reference, &amount, &method, &o.CustomerID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return Order{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return Order{}, fmt.Errorf("parsing amount of order %d: %w", o.ID, err)
	}
	o.TotalAmount = parsed
	o.PaymentMethod = events.PaymentMethod(method)
	return o, nil
}
