package queue

import "context"

// Consumer pulls realtime notification frames off the broker for the
// lifetime of the context.
type Consumer interface {
	Start(ctx context.Context) error
}

// Publisher pushes a raw frame onto the broker under a routing key.
type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}
