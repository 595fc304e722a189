package actor

import "github.com/gammazero/deque"

// queue is an unbounded FIFO used by the deque-backed Mailbox variant. It
// wraps gammazero/deque, the same queue the teacher library uses, so a
// Mailbox never blocks its producers regardless of how far the consumer
// falls behind.
type queue[T any] struct {
	d *deque.Deque[T]
}

func newQueue[T any](capacity, minCapacity int) *queue[T] {
	return &queue[T]{
		d: deque.New[T](capacity, minCapacity),
	}
}

func (q *queue[T]) IsEmpty() bool {
	return q.d.Len() == 0
}

func (q *queue[T]) Len() int {
	return q.d.Len()
}

func (q *queue[T]) PushBack(v T) {
	q.d.PushBack(v)
}

func (q *queue[T]) Front() T {
	return q.d.Front()
}

func (q *queue[T]) PopFront() {
	q.d.PopFront()
}
