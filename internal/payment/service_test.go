package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/pashhha/e-commerce-app/internal/events"
	"github.com/pashhha/e-commerce-app/internal/platform/httpx"
	"github.com/pashhha/e-commerce-app/internal/platform/kafka"
)

var errStorage = errors.New("storage down")

type memoryRepository struct {
	payments []Payment
	err      error
}

func (r *memoryRepository) Create(_ context.Context, p Payment) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	p.ID = int64(len(r.payments) + 1)
	r.payments = append(r.payments, p)
	return p.ID, nil
}

type recordingProducer struct {
	messages []kafkago.Message
	err      error
}

func (p *recordingProducer) WriteMessage(_ context.Context, msg kafkago.Message) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func newTestService(repo Repository, producer kafka.Producer) Service {
	publisher := NewKafkaConfirmationPublisher(kafka.NewPublisher(producer, "payment-topic", zap.NewNop()))
	return NewService(repo, publisher, zap.NewNop(), noop.NewTracerProvider().Tracer("test"))
}

func validRequest() events.PaymentRequest {
	return events.PaymentRequest{
		Amount:         decimal.RequireFromString("65.00"),
		PaymentMethod:  events.PaymentMethodCreditCard,
		OrderID:        7,
		OrderReference: "REF-7",
		Customer:       events.Customer{ID: "c-1", Firstname: "Ada", Lastname: "Lovelace", Email: "ada@example.com"},
	}
}

func TestProcessPayment_PersistsThenPublishes(t *testing.T) {
	repo := &memoryRepository{}
	producer := &recordingProducer{}

	id, err := newTestService(repo, producer).ProcessPayment(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, repo.payments, 1)
	assert.Equal(t, int64(7), repo.payments[0].OrderID)
	assert.Equal(t, events.PaymentMethodCreditCard, repo.payments[0].PaymentMethod)

	require.Len(t, producer.messages, 1)
	msg := producer.messages[0]
	assert.Equal(t, "REF-7", string(msg.Key))
	assert.Equal(t, events.TypePaymentConfirmation, kafka.HeaderValue(msg, kafka.EventTypeHeader))

	var confirmation events.PaymentConfirmation
	require.NoError(t, json.Unmarshal(msg.Value, &confirmation))
	assert.Equal(t, "REF-7", confirmation.OrderReference)
	assert.Equal(t, "Ada", confirmation.CustomerFirstname)
	assert.Equal(t, "Lovelace", confirmation.CustomerLastname)
	assert.Equal(t, "ada@example.com", confirmation.CustomerEmail)
	assert.True(t, decimal.RequireFromString("65").Equal(confirmation.Amount))
}

func TestProcessPayment_StorageFailureSkipsPublish(t *testing.T) {
	producer := &recordingProducer{}

	_, err := newTestService(&memoryRepository{err: errStorage}, producer).ProcessPayment(context.Background(), validRequest())

	require.ErrorIs(t, err, errStorage)
	assert.Empty(t, producer.messages)
}

func TestProcessPayment_PublishFailureKeepsPayment(t *testing.T) {
	repo := &memoryRepository{}

	_, err := newTestService(repo, &recordingProducer{err: errStorage}).ProcessPayment(context.Background(), validRequest())

	require.Error(t, err)
	assert.Len(t, repo.payments, 1)
}

func TestProcessPayment_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*events.PaymentRequest)
	}{
		{name: "zero amount", mutate: func(r *events.PaymentRequest) { r.Amount = decimal.Zero }},
		{name: "missing method", mutate: func(r *events.PaymentRequest) { r.PaymentMethod = "" }},
		{name: "missing order", mutate: func(r *events.PaymentRequest) { r.OrderID = 0 }},
		{name: "missing firstname", mutate: func(r *events.PaymentRequest) { r.Customer.Firstname = "" }},
		{name: "bad email", mutate: func(r *events.PaymentRequest) { r.Customer.Email = "ada" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepository{}
			req := validRequest()
			tt.mutate(&req)

			_, err := newTestService(repo, &recordingProducer{}).ProcessPayment(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidPayment)
			assert.Empty(t, repo.payments)
		})
	}
}

func TestHandler_CreatePayment(t *testing.T) {
	r := httpx.NewRouter(zap.NewNop())
	NewHandler(newTestService(&memoryRepository{}, &recordingProducer{}), zap.NewNop()).Routes(r)

	body, err := json.Marshal(validRequest())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(string(body))))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", strings.TrimSpace(rec.Body.String()))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"amount":"1","paymentMethod":"VISA"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
