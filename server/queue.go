package server

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrQueueClosed is returned by TryPush and Pop once the queue is closed.
	ErrQueueClosed = errors.New("server: queue closed")

	// ErrQueueFull is returned by TryPush when the queue is at capacity.
	ErrQueueFull = errors.New("server: queue full")
)

// Queue is a bounded, closeable FIFO shared by the leader and the workers.
// Push never blocks; Pop blocks until an item, close or cancellation.
type Queue[T any] struct {
	items chan T
	done  chan struct{}

	mu     sync.RWMutex // guards closed against concurrent TryPush
	closed bool
}

// NewQueue creates a queue holding at most capacity items.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Queue[T]{
		items: make(chan T, capacity),
		done:  make(chan struct{}),
	}
}

// TryPush appends item or reports why it cannot.
func (q *Queue[T]) TryPush(item T) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.items <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

// Pop removes the oldest item. Close takes priority over queued items: once
// the queue is closed Pop returns ErrQueueClosed even if items remain.
func (q *Queue[T]) Pop(ctx context.Context) (T, error) {
	var zero T
	select {
	case <-q.done:
		return zero, ErrQueueClosed
	default:
	}

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-q.done:
		return zero, ErrQueueClosed
	case item := <-q.items:
		return item, nil
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.items) }

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int { return cap(q.items) }

// Close wakes every waiting Pop and returns the abandoned items. Later calls
// return nil.
func (q *Queue[T]) Close() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true
	close(q.done)

	var abandoned []T
	for {
		select {
		case item := <-q.items:
			abandoned = append(abandoned, item)
		default:
			return abandoned
		}
	}
}
