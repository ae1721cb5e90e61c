package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pashhha/e-commerce-app/internal/platform/postgres"
)

var Schema = []string{
	`CREATE TABLE IF NOT EXISTS customer (
		id           VARCHAR(36) PRIMARY KEY,
		firstname    VARCHAR(255) NOT NULL,
		lastname     VARCHAR(255) NOT NULL,
		email        VARCHAR(255) NOT NULL,
		street       VARCHAR(255),
		house_number VARCHAR(50),
		zip_code     VARCHAR(20)
	)`,
}

const customerColumns = `id, firstname, lastname, email, street, house_number, zip_code`

type PostgresRepository struct {
	db postgres.DB
}

func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save inserts the customer or overwrites the stored row with the same id.
func (r *PostgresRepository) Save(ctx context.Context, c Customer) error {
	var street, houseNumber, zipCode *string
	if c.Address != nil {
		street, houseNumber, zipCode = &c.Address.Street, &c.Address.HouseNumber, &c.Address.ZipCode
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO customer (`+customerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			firstname = EXCLUDED.firstname,
			lastname = EXCLUDED.lastname,
			email = EXCLUDED.email,
			street = EXCLUDED.street,
			house_number = EXCLUDED.house_number,
			zip_code = EXCLUDED.zip_code`,
		c.ID, c.Firstname, c.Lastname, c.Email, street, houseNumber, zipCode,
	)
	return err
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customer WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+customerColumns+` FROM customer ORDER BY lastname, firstname, id`)
	if err != nil {
		return nil, err
	}
	customers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Customer, error) {
		return scanCustomer(row)
	})
	if err != nil {
		return nil, fmt.Errorf("reading customers: %w", err)
	}
	return customers, nil
}

// Delete removes the customer if present; deleting an unknown id is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM customer WHERE id = $1`, id)
	return err
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var (
		c                            Customer
		street, houseNumber, zipCode *string
	)
	if err := row.Scan(&c.ID, &c.Firstname, &c.Lastname, &c.Email, &street, &houseNumber, &zipCode); err != nil {
		return Customer{}, err
	}
	if street != nil || houseNumber != nil || zipCode != nil {
		c.Address = &Address{Street: deref(street), HouseNumber: deref(houseNumber), ZipCode: deref(zipCode)}
	}
	return c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
