package customer

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/pashhha/e-commerce-app/internal/events"
)

type Address struct {
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	ZipCode     string `json:"zipCode"`
}

type Customer struct {
	ID        string   `json:"id"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Email     string   `json:"email"`
	Address   *Address `json:"address,omitempty"`
}

// Snapshot returns the customer fields other services embed in their payloads.
func (c Customer) Snapshot() events.Customer {
	return events.Customer{
		ID:        c.ID,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
		Email:     c.Email,
	}
}

// Request is the body of create and update calls. ID is only read on update.
type Request struct {
	ID        string   `json:"id,omitempty"`
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Email     string   `json:"email"`
	Address   *Address `json:"address,omitempty"`
}

// ValidateCreate checks the fields a new customer must carry.
func (r Request) ValidateCreate() error {
	var errs []error
	if isBlank(r.Firstname) {
		errs = append(errs, errors.New("customer firstname is required"))
	}
	if isBlank(r.Lastname) {
		errs = append(errs, errors.New("customer lastname is required"))
	}
	if isBlank(r.Email) {
		errs = append(errs, errors.New("customer email is required"))
	} else if err := validateEmail(r.Email); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateUpdate checks an update; blank fields are left untouched, so only the id is required.
func (r Request) ValidateUpdate() error {
	if isBlank(r.ID) {
		return errors.New("customer id is required")
	}
	if !isBlank(r.Email) {
		return validateEmail(r.Email)
	}
	return nil
}

// merge copies every non-blank field of r onto c.
func (r Request) merge(c *Customer) {
	if !isBlank(r.Firstname) {
		c.Firstname = r.Firstname
	}
	if !isBlank(r.Lastname) {
		c.Lastname = r.Lastname
	}
	if !isBlank(r.Email) {
		c.Email = r.Email
	}
	if r.Address != nil {
		address := *r.Address
		c.Address = &address
	}
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("customer email %q is not a valid email address", email)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
