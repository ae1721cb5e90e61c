package kafka

import (
	"context"
	"errors"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
)

type fakeProducer struct {
	mu       sync.Mutex
	messages []kafkago.Message
	err      error
}

func (p *fakeProducer) WriteMessage(_ context.Context, msg kafkago.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

// fakeConsumer yields the queued messages and then blocks until ctx is cancelled.
type fakeConsumer struct {
	queue []kafkago.Message
	cancel context.CancelFunc
}

func (c *fakeConsumer) ReadMessage(ctx context.Context) (*kafkago.Message, error) {
	if len(c.queue) == 0 {
		c.cancel()
		<-ctx.Done()
		return nil, ctx.Err()
	}
	msg := c.queue[0]
	c.queue = c.queue[1:]
	return &msg, nil
}

func (c *fakeConsumer) Close() error { return nil }

var errBoom = errors.New("boom")
