package boundedqueue

import (
	"sync"
)

// Queue is a concurrency-safe FIFO queue with an optional capacity bound.
// When bounded, Push blocks while the queue is full and Pop blocks while it
// is empty and open; both suspend on a condition variable rather than
// polling. The zero value is not ready for use; construct via New or
// NewUnbounded.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond // signaled when an item is appended or Finish is called
	notFull  *sync.Cond // signaled on every removal from a bounded queue
	data     []T
	capacity int // 0 means unbounded
	closed   bool
}

// New creates a queue holding at most capacity items.
//
// A producer pushing into a full queue blocks until a consumer frees a slot.
// Panics if capacity <= 0; use NewUnbounded for a queue without a bound.
func New[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		panic("boundedqueue: New requires capacity > 0")
	}
	q := &Queue[T]{
		data:     make([]T, 0, capacity),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// NewUnbounded creates a queue without a capacity bound.
// Push never blocks; behavior is otherwise identical to New.
func NewUnbounded[T any]() *Queue[T] {
	q := &Queue[T]{
		data: make([]T, 0),
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Push appends v to the tail, blocking while the queue is at capacity.
// It wakes one waiting consumer after appending.
//
// Calling Push after Finish is caller misuse: the producer must stop pushing
// before it calls Finish. No runtime check enforces this.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	for q.full() {
		q.notFull.Wait()
	}
	q.data = append(q.data, v)
	q.notEmpty.Signal()
	q.mu.Unlock()
}

// PushAll pushes items in order, blocking on each as Push does.
func (q *Queue[T]) PushAll(items ...T) {
	for _, v := range items {
		q.Push(v)
	}
}

// TryPush appends v without blocking.
// Returns false when the queue is at capacity.
func (q *Queue[T]) TryPush(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.full() {
		return false
	}
	q.data = append(q.data, v)
	q.notEmpty.Signal()
	return true
}

// Pop removes and returns the head value, blocking while the queue is empty
// and open. Returns ok=false only when the queue is closed and drained; once
// that state is reached every subsequent Pop returns immediately.
//
// Each pop from a bounded queue frees a slot and wakes one waiting producer,
// if any.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.data) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	return q.popLocked()
}

// TryPop removes and returns the head value without blocking.
// ok is false when the queue is empty, whether or not it is closed.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.data) == 0 {
		var zero T
		return zero, false
	}
	return q.popLocked()
}

// Finish marks the queue closed: no further items will arrive. All waiting
// consumers are woken so each can re-check the closed-and-empty termination
// condition. Idempotent; a second call has no effect.
func (q *Queue[T]) Finish() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
}

// Peek returns the head value without removing it.
// The second result is false when the queue is empty. Complexity: O(1).
func (q *Queue[T]) Peek() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	if len(q.data) == 0 {
		return zero, false
	}
	return q.data[0], true
}

// Len returns the number of items currently queued.
//
// Advisory only: in a concurrent context the value may be stale by the time
// it is returned, and must not be used to predict whether a subsequent Push
// or Pop will block.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.data)
}

// Cap returns the capacity bound, or 0 for an unbounded queue.
func (q *Queue[T]) Cap() int {
	return q.capacity
}

// IsEmpty reports whether the queue is empty.
// Advisory only, like Len.
func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Closed reports whether Finish has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// ToSlice returns a copy of the queue's contents in FIFO order.
// Complexity: O(n). The returned slice is independent of the queue.
func (q *Queue[T]) ToSlice() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]T, len(q.data))
	copy(out, q.data)
	return out
}

// full reports whether the queue is at capacity. Caller holds q.mu.
func (q *Queue[T]) full() bool {
	return q.capacity > 0 && len(q.data) >= q.capacity
}

// popLocked removes and returns the head value, waking one producer per
// removal from a bounded queue. Caller holds q.mu.
func (q *Queue[T]) popLocked() (T, bool) {
	var zero T
	if len(q.data) == 0 {
		return zero, false
	}
	v := q.data[0]
	// Avoid O(n) element moves by reslicing; let GC reclaim older head when needed.
	q.data = q.data[1:]
	// Signal after every removal, not only when the queue was at capacity:
	// with several producers parked, back-to-back pops would otherwise signal
	// once and strand the rest. Waiters re-check in a loop, so a wakeup with
	// no waiter is harmless.
	if q.capacity > 0 {
		q.notFull.Signal()
	}
	return v, true
}
