// Package queue provides the unbounded hand-off queues between the terminal
// workers and the main loop.
package queue

import (
	"context"
	"sync"
)

// Queue is an unbounded MPSC FIFO
// Thread-Safety:
//   - Push: any goroutine
//   - TryPop, Consume, Wait: single consumer (the next pipeline stage)
//
// Ready is signalled on every Push; a consumer that wakes on it must drain
// until empty since signals coalesce
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
	ready chan struct{}
}

// New creates an empty queue
func New[T any]() *Queue[T] {
	return &Queue[T]{ready: make(chan struct{}, 1)}
}

// Push appends an item and signals readiness without blocking
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready returns the readiness signal channel
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// TryPop removes the oldest item if present
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head == len(q.items) {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	q.compact()
	return item, true
}

// Consume returns all pending items in FIFO order
func (q *Queue[T]) Consume() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return nil
	}
	out := make([]T, len(q.items)-q.head)
	copy(out, q.items[q.head:])
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
	return out
}

// Wait blocks until an item is available or ctx is done
func (q *Queue[T]) Wait(ctx context.Context) (T, bool) {
	for {
		if item, ok := q.TryPop(); ok {
			return item, true
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, false
		case <-q.ready:
		}
	}
}

// Len returns the number of pending items
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// compact reclaims the consumed prefix once the slice is fully drained or
// the dead prefix dominates
func (q *Queue[T]) compact() {
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
		return
	}
	if q.head > 64 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
}
