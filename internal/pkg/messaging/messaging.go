package messaging

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/atomic"
)

// ErrClosed is returned by operations on a closed client.
var ErrClosed = errors.New("messaging: client is closed")

// Messaging publishes and consumes messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a topic (subject for NATS).
type Publisher interface {
	Publish(ctx context.Context, topic string, msg OutgoingMessage) error
}

// Consumer consumes messages from a topic until ctx is done.
type Consumer interface {
	Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message.
//
// With auto ack enabled a nil error acks the message and a non-nil error nacks it.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to be published.
type OutgoingMessage struct {
	// Key is used by Kafka for partitioning. Other brokers ignore it.
	Key string
	// Body is the payload.
	Body []byte
	// Headers are dropped by NSQ, which has no header support.
	Headers map[string]string
}

// Message is a received message.
type Message interface {
	Topic() string
	Key() string
	Body() []byte
	Header(key string) string
	ReceivedAt() time.Time

	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}

// delivery is the Message implementation shared by every driver. Each driver
// supplies its own ack and nack callbacks.
type delivery struct {
	topic      string
	key        string
	body       []byte
	headers    map[string]string
	receivedAt time.Time

	ack  func() error
	nack func() error

	responded atomic.Bool
}

func (d *delivery) Topic() string         { return d.topic }
func (d *delivery) Key() string           { return d.key }
func (d *delivery) Body() []byte          { return d.body }
func (d *delivery) ReceivedAt() time.Time { return d.receivedAt }

func (d *delivery) Header(key string) string {
	if d.headers == nil {
		return ""
	}
	return d.headers[key]
}

func (d *delivery) Ack(ctx context.Context) error {
	return d.respond(ctx, d.ack)
}

func (d *delivery) Nack(ctx context.Context) error {
	return d.respond(ctx, d.nack)
}

// respond runs fn at most once across Ack and Nack.
func (d *delivery) respond(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.responded.Swap(true) || fn == nil {
		return nil
	}
	return fn()
}

// dispatch runs the handler and, with auto ack, responds to the broker.
// The returned error is the broker response error, never the handler error.
func dispatch(ctx context.Context, driver string, d *delivery, handler Handler, autoAck bool) error {
	herr := callHandlerWithRecover(ctx, driver, d.topic, func() error {
		return handler(ctx, d)
	})
	if !autoAck || d.responded.Load() {
		return nil
	}
	if herr != nil {
		return d.Nack(ctx)
	}
	return d.Ack(ctx)
}
