package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

type Producer interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

type Consumer interface {
	ReadMessage(ctx context.Context) (*kafka.Message, error)
	Close() error
}

// MessageHandler processes a single message read from a topic.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg kafka.Message) error
}

// HandlerFunc adapts an ordinary function to MessageHandler.
type HandlerFunc func(ctx context.Context, msg kafka.Message) error

func (f HandlerFunc) HandleMessage(ctx context.Context, msg kafka.Message) error {
	return f(ctx, msg)
}
