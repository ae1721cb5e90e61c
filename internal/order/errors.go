package order

import (
	"errors"
	"fmt"
)

const (
	CodeCustomerNotFound = "customer_not_found"
	CodeOrderNotFound    = "order_not_found"
	CodeDependencyFailed = "dependency_unavailable"
)

var (
	ErrInvalidOrder                 = errors.New("invalid order")
	ErrCustomerNotFound             = errors.New("customer not found")
	ErrOrderNotFound                = errors.New("order not found")
	ErrCustomerDirectoryUnavailable = errors.New("customer directory unavailable")
	ErrInventoryUnavailable         = errors.New("inventory unavailable")
	ErrPaymentUnavailable           = errors.New("payment service unavailable")
)

// Step names one stage of the placement workflow.
type Step string

const (
	StepLookupCustomer      Step = "lookup-customer"
	StepPurchaseProducts    Step = "purchase-products"
	StepPersistOrder        Step = "persist-order"
	StepPersistOrderLines   Step = "persist-order-lines"
	StepRequestPayment      Step = "request-payment"
	StepPublishConfirmation Step = "publish-confirmation"
)

// StepError reports the step at which placement stopped. Committed is true once the
// purchase step has succeeded, so every requested decrement is applied and nothing
// reverts it. A purchase that fails with ErrInsufficientStock may still have
// decremented lower-id products of the same batch; Committed stays false then,
// because the ledger does not report which rows it touched.
type StepError struct {
	Step      Step
	Committed bool
	Err       error
}

func (e *StepError) Error() string {
	if e.Committed {
		return fmt.Sprintf("place order: %s (after stock was committed): %v", e.Step, e.Err)
	}
	return fmt.Sprintf("place order: %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
