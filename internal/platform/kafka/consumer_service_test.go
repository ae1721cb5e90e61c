package kafka

import (
	"context"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConsumerService_HandlesMessagesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := &fakeConsumer{
		queue: []kafkago.Message{
			{Key: []byte("a"), Value: []byte("1")},
			{Key: []byte("b"), Value: []byte("2")},
			{Key: []byte("c"), Value: []byte("3")},
		},
		cancel: cancel,
	}

	var seen []string
	handler := HandlerFunc(func(_ context.Context, msg kafkago.Message) error {
		seen = append(seen, string(msg.Key))
		if string(msg.Key) == "b" {
			return errBoom
		}
		return nil
	})

	service := NewConsumerService("order-topic", consumer, handler, zap.NewNop())
	require.NoError(t, service.Start(ctx))

	// a failing message does not stop the loop
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestExtractTraceContext_NoHeaders(t *testing.T) {
	ctx := ExtractTraceContext(context.Background(), nil)
	assert.NotNil(t, ctx)
}
