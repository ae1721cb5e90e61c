package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/pashhha/e-commerce-app/internal/platform/postgres"
)

// Schema creates the product tables and seeds the default categories.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS category (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(255) NOT NULL UNIQUE,
		description VARCHAR(255) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS product (
		id                 BIGSERIAL PRIMARY KEY,
		name               VARCHAR(255) NOT NULL,
		description        VARCHAR(255) NOT NULL,
		available_quantity DOUBLE PRECISION NOT NULL,
		price              NUMERIC(38, 2) NOT NULL,
		category_id        BIGINT NOT NULL REFERENCES category (id)
	)`,
	`INSERT INTO category (name, description) VALUES
		('Keyboards', 'Computer keyboards'),
		('Monitors', 'Computer monitors'),
		('Screens', 'Display screens'),
		('Mice', 'Computer mice'),
		('Accessories', 'Computer accessories')
	ON CONFLICT (name) DO NOTHING`,
}

const productColumns = `p.id, p.name, p.description, p.available_quantity, p.price::text,
	c.id, c.name, c.description`

const productFrom = ` FROM product p JOIN category c ON c.id = p.category_id`

// PostgresRepository stores products with pgx.
type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, req ProductRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO product (name, description, available_quantity, price, category_id)
		 VALUES ($1, $2, $3, $4::numeric, $5) RETURNING id`,
		req.Name, req.Description, req.AvailableQuantity, req.Price.String(), req.CategoryID,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, ErrCategoryNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+productFrom+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *PostgresRepository) FindAllByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = ANY($1) ORDER BY p.id`, ids)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// UpdateQuantity overwrites the stored stock level. There is no version check.
func (r *PostgresRepository) UpdateQuantity(ctx context.Context, id int64, quantity float64) error {
	tag, err := r.db.Exec(ctx, `UPDATE product SET available_quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("reading products: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.AvailableQuantity, &price,
		&p.Category.ID, &p.Category.Name, &p.Category.Description); err != nil {
		return Product{}, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return Product{}, fmt.Errorf("parsing price of product %d: %w", p.ID, err)
	}
	p.Price = parsed
	return p, nil
}
