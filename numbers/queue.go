package numbers

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO. Push never blocks; Pop waits for an item or for
// ctx to be cancelled.
type Queue[T any] struct {
	mu       sync.Mutex
	items    []T
	notEmpty chan struct{}
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{notEmpty: make(chan struct{}, 1)}
}

func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()

	// Wake a waiting consumer, non-blocking
	select {
	case q.notEmpty <- struct{}{}:
	default:
	}
}

// Pop returns the oldest item. It returns false once ctx is done, even if items remain.
func (q *Queue[T]) Pop(ctx context.Context) (T, bool) {
	var zero T
	for {
		if ctx.Err() != nil {
			return zero, false
		}

		q.mu.Lock()
		if len(q.items) > 0 {
			v := q.items[0]
			q.items[0] = zero
			q.items = q.items[1:]
			more := len(q.items) > 0
			q.mu.Unlock()

			// Pass the wake-up on so another consumer does not sleep on a non-empty queue
			if more {
				select {
				case q.notEmpty <- struct{}{}:
				default:
				}
			}
			return v, true
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return zero, false
		case <-q.notEmpty:
		}
	}
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
