package queue

import (
	"sync"

	"github.com/gammazero/deque"
)

// Queue is a thread-safe unbounded FIFO. The zero value is not usable;
// create instances with New.
type Queue[T any] struct {
	mu    sync.Mutex
	items deque.Deque[T]
	ready chan struct{}
}

// New creates an empty Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		ready: make(chan struct{}, 1),
	}
}

// Push appends v at the tail and signals Ready without blocking.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items.PushBack(v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
		// A wake-up is already pending.
	}
}

// Pop removes and returns the head of the queue. ok is false when the
// queue is empty.
func (q *Queue[T]) Pop() (v T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Len() == 0 {
		return v, false
	}
	return q.items.PopFront(), true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// Ready returns a channel that receives after at least one Push since the
// last receive. A receive does not guarantee the queue is non-empty, since
// another consumer may have popped in between.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}
