package customer

import "errors"

const CodeCustomerNotFound = "customer_not_found"

var ErrCustomerNotFound = errors.New("customer not found")

var ErrInvalidCustomer = errors.New("invalid customer")
