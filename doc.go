// Package boundedqueue provides a capacity-bounded, blocking FIFO queue for
// producer/consumer hand-off within a single process.
//
// The queue is concurrency-safe: all exported methods use internal locking
// and may be called from multiple goroutines. Construct a queue with New
// (bounded) or NewUnbounded. Push blocks while the queue is full, which is
// the backpressure mechanism: a fast producer suspends instead of growing the
// queue without bound or dropping items. Pop blocks while the queue is empty
// and still open, and returns ok=false only after Finish has been called and
// every remaining item has been drained.
//
// Blocking uses the standard monitor pattern: one mutex and two condition
// variables (not-empty, not-full). A waiter releases the lock while suspended
// and re-checks its predicate in a loop after every wake-up, so spurious
// wake-ups are harmless. No code path polls on a timer; a goroutine blocked
// on an empty or full queue consumes no CPU until it is signaled. Re-checking
// the predicate on a fixed sleep interval is the rejected alternative to this
// design.
//
// Shutdown is cooperative. The producer side calls Finish exactly once after
// its last Push; Finish wakes every waiting consumer so each can observe the
// closed-and-empty termination condition. Pushing after Finish is caller
// misuse and is not checked at runtime.
package boundedqueue
