package dispatch

import (
	"context"
	"errors"
	"sync"
)

// ErrCancelled is returned by Consumer.Await when the result will never
// arrive: the producer was dropped without sending, or the consumer itself
// abandoned the wait.
var ErrCancelled = errors.New("operation cancelled")

// Producer is the sending half of a one-shot result channel. It is held by
// a native callback closure and used at most once.
type Producer[T any] struct {
	ch        chan T
	abandoned chan struct{}
	dropped   chan struct{}
	sendOnce  sync.Once
	dropOnce  sync.Once
}

// Consumer is the receiving half of a one-shot result channel.
type Consumer[T any] struct {
	ch          chan T
	abandoned   chan struct{}
	dropped     chan struct{}
	abandonOnce sync.Once
}

// NewResult creates a single-use producer/consumer pair. The producer and
// consumer may live on different goroutines; delivery is exactly-once.
func NewResult[T any]() (*Producer[T], *Consumer[T]) {
	ch := make(chan T, 1)
	abandoned := make(chan struct{})
	dropped := make(chan struct{})
	p := &Producer[T]{ch: ch, abandoned: abandoned, dropped: dropped}
	c := &Consumer[T]{ch: ch, abandoned: abandoned, dropped: dropped}
	return p, c
}

// Send delivers v to the consumer. It reports false when the consumer has
// already abandoned the wait, in which case v is discarded; this is a
// cancellation signal, not an error. Only the first Send can ever succeed.
func (p *Producer[T]) Send(v T) bool {
	sent := false
	p.sendOnce.Do(func() {
		select {
		case <-p.abandoned:
		default:
			p.ch <- v
			sent = true
		}
	})
	p.Close()
	return sent
}

// Close marks the producer as finished. Closing without a prior Send is
// equivalent to sending a cancellation signal to the consumer. Close is
// idempotent and is implied by Send.
func (p *Producer[T]) Close() {
	p.dropOnce.Do(func() { close(p.dropped) })
}

// Await suspends the calling goroutine until a value arrives, the producer
// is dropped without sending (ErrCancelled), or ctx is done. A ctx-driven
// return abandons the wait: a later Send becomes a silent no-op.
func (c *Consumer[T]) Await(ctx context.Context) (T, error) {
	var zero T
	select {
	case v := <-c.ch:
		return v, nil
	case <-c.dropped:
		// The producer may have sent and closed concurrently; the value, if
		// any, is already buffered.
		select {
		case v := <-c.ch:
			return v, nil
		default:
			return zero, ErrCancelled
		}
	case <-ctx.Done():
		c.Abandon()
		return zero, ErrCancelled
	}
}

// Abandon gives up on the result. Idempotent; implied by a ctx-driven
// return from Await.
func (c *Consumer[T]) Abandon() {
	c.abandonOnce.Do(func() { close(c.abandoned) })
}
