package order

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/inventory"
)

// placement carries the state of one PlaceOrder call across its steps.
type placement struct {
	svc *DefaultService
	req PlaceOrderRequest

	customer  events.Customer
	purchased []inventory.PurchaseResponse
	orderID   int64
	committed bool
}

type step struct {
	name Step
	run  func(p *placement, ctx context.Context) error
}

// placementSteps run strictly in order. Nothing is undone when a step after
// purchase-products fails.
var placementSteps = []step{
	{StepLookupCustomer, (*placement).lookupCustomer},
	{StepPurchaseProducts, (*placement).purchaseProducts},
	{StepPersistOrder, (*placement).persistOrder},
	{StepPersistOrderLines, (*placement).persistOrderLines},
	{StepRequestPayment, (*placement).requestPayment},
	{StepPublishConfirmation, (*placement).publishConfirmation},
}

func (p *placement) execute(ctx context.Context) (int64, error) {
	for _, st := range placementSteps {
		stepCtx, span := p.svc.tracer.Start(ctx, "order."+string(st.name))
		err := st.run(p, stepCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return 0, &StepError{Step: st.name, Committed: p.committed, Err: err}
		}
		span.End()
	}
	return p.orderID, nil
}

func (p *placement) lookupCustomer(ctx context.Context) error {
	customer, ok, err := p.svc.customers.FindCustomerByID(ctx, p.req.CustomerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no customer with id %s: %w", p.req.CustomerID, ErrCustomerNotFound)
	}
	p.customer = customer
	return nil
}

// purchaseProducts marks the placement committed only on success; partial
// decrements from a failed batch are not visible here.
func (p *placement) purchaseProducts(ctx context.Context) error {
	purchased, err := p.svc.inventory.Purchase(ctx, p.req.Products)
	if err != nil {
		return err
	}
	p.purchased = purchased
	p.committed = true
	return nil
}

func (p *placement) persistOrder(ctx context.Context) error {
	id, err := p.svc.repo.CreateOrder(ctx, Order{
		Reference:     p.req.Reference,
		TotalAmount:   p.req.Amount,
		PaymentMethod: p.req.PaymentMethod,
		CustomerID:    p.req.CustomerID,
	})
	if err != nil {
		return fmt.Errorf("saving order: %w", err)
	}
	p.orderID = id
	return nil
}

// persistOrderLines writes one line per requested product, taken from the request
// rather than from the purchase results.
func (p *placement) persistOrderLines(ctx context.Context) error {
	for _, item := range p.req.Products {
		_, err := p.svc.repo.CreateOrderLine(ctx, OrderLine{
			OrderID:   p.orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
		if err != nil {
			return fmt.Errorf("saving order line for product %d: %w", item.ProductID, err)
		}
	}
	return nil
}

func (p *placement) requestPayment(ctx context.Context) error {
	paymentID, err := p.svc.payments.RequestPayment(ctx, events.PaymentRequest{
		Amount:         p.req.Amount,
		PaymentMethod:  p.req.PaymentMethod,
		OrderID:        p.orderID,
		OrderReference: p.req.Reference,
		Customer:       p.customer,
	})
	if err != nil {
		return err
	}
	p.svc.logger.Info("💳 Payment requested",
		zap.Int64("order_id", p.orderID),
		zap.Int64("payment_id", paymentID),
	)
	return nil
}

func (p *placement) publishConfirmation(ctx context.Context) error {
	confirmation := events.OrderConfirmation{
		OrderReference: p.req.Reference,
		TotalAmount:    p.req.Amount,
		PaymentMethod:  p.req.PaymentMethod,
		Customer:       p.customer,
		Products:       p.purchased,
	}
	return p.svc.publisher.PublishOrderConfirmation(ctx, confirmation.Clone())
}

func placementAttributes(req PlaceOrderRequest) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("order.reference", req.Reference),
		attribute.String("order.customer_id", req.CustomerID),
		attribute.String("order.payment_method", req.PaymentMethod.String()),
		attribute.Int("order.items", len(req.Products)),
	}
}
