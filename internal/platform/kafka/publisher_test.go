package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sampleEvent struct {
	OrderReference string   `json:"orderReference"`
	Products       []string `json:"products"`
}

func TestPublisher_Publish(t *testing.T) {
	producer := &fakeProducer{}
	publisher := NewPublisher(producer, "order-topic", zap.NewNop())

	event := sampleEvent{OrderReference: "REF-1", Products: []string{"keyboard"}}
	require.NoError(t, publisher.Publish(context.Background(), "REF-1", "OrderConfirmation", event))

	// mutating the value after publishing must not affect the written payload
	event.Products[0] = "mouse"

	require.Len(t, producer.messages, 1)
	msg := producer.messages[0]
	assert.Equal(t, "REF-1", string(msg.Key))
	assert.Equal(t, "OrderConfirmation", HeaderValue(msg, EventTypeHeader))

	var decoded sampleEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, []string{"keyboard"}, decoded.Products)
	assert.Equal(t, "order-topic", publisher.Topic())
}

func TestPublisher_WriteFailure(t *testing.T) {
	producer := &fakeProducer{err: errBoom}
	publisher := NewPublisher(producer, "payment-topic", zap.NewNop())

	err := publisher.Publish(context.Background(), "REF-2", "PaymentConfirmation", sampleEvent{})
	require.ErrorIs(t, err, errBoom)
}

func TestPublisher_UnserializableEvent(t *testing.T) {
	publisher := NewPublisher(&fakeProducer{}, "order-topic", zap.NewNop())

	err := publisher.Publish(context.Background(), "k", "Bad", make(chan int))
	require.Error(t, err)
}
