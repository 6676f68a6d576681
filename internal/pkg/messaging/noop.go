package messaging

import (
	"context"
	"errors"

	"go.uber.org/atomic"
)

// ErrHandlerRequired is returned when Consume is called with a nil handler.
var ErrHandlerRequired = errors.New("messaging: handler is required")

// Noop drops every published message and never delivers anything.
type Noop struct {
	closed atomic.Bool
}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Close() error {
	n.closed.Store(true)
	return nil
}

func (n *Noop) Publish(ctx context.Context, _ string, _ OutgoingMessage) error {
	if n.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

// Consume blocks until ctx is done.
func (n *Noop) Consume(ctx context.Context, _ string, handler Handler, _ ...ConsumeOption) error {
	if handler == nil {
		return ErrHandlerRequired
	}
	if n.closed.Load() {
		return ErrClosed
	}
	<-ctx.Done()
	return ctx.Err()
}
