package boundedqueue

import (
	"context"
	"errors"
)

// ErrDrained is returned by PopContext when the queue is closed and every
// item has been consumed. It signals expected end-of-stream, not failure.
var ErrDrained = errors.New("boundedqueue: queue is finished and drained")

// IsContextError reports whether err equals context.Canceled or context.DeadlineExceeded.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// PopContext behaves like Pop but gives up when ctx is done. On success it
// returns (value, nil). At end-of-stream it returns ErrDrained; on
// cancellation it returns ctx.Err(). In both non-nil cases the value is the
// zero value of T.
func (q *Queue[T]) PopContext(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	q.mu.Lock()
	// Fast paths: item available, or already drained.
	if v, ok := q.popLocked(); ok {
		q.mu.Unlock()
		return v, nil
	}
	var zero T
	if q.closed {
		q.mu.Unlock()
		return zero, ErrDrained
	}
	// Wait with cancellation. A short-lived watcher broadcasts on ctx.Done
	// to wake the Wait below; Wait releases and re-acquires q.mu.
	for {
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				q.mu.Lock()
				q.notEmpty.Broadcast()
				q.mu.Unlock()
			case <-done:
			}
		}()

		q.notEmpty.Wait()
		close(done)

		if v, ok := q.popLocked(); ok {
			q.mu.Unlock()
			return v, nil
		}
		if q.closed {
			q.mu.Unlock()
			return zero, ErrDrained
		}
		if err := ctx.Err(); err != nil {
			q.mu.Unlock()
			return zero, err
		}
	}
}

// PushContext behaves like Push but gives up when ctx is done while waiting
// for room. Returns nil once the item is appended, or ctx.Err() on
// cancellation, in which case the item was not appended.
//
// As with Push, calling PushContext after Finish is caller misuse.
func (q *Queue[T]) PushContext(ctx context.Context, v T) error {
	if ctx == nil {
		ctx = context.Background()
	}
	q.mu.Lock()
	for {
		if !q.full() {
			q.data = append(q.data, v)
			q.notEmpty.Signal()
			q.mu.Unlock()
			return nil
		}

		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				q.mu.Lock()
				q.notFull.Broadcast()
				q.mu.Unlock()
			case <-done:
			}
		}()

		q.notFull.Wait()
		close(done)

		if !q.full() {
			continue
		}
		if err := ctx.Err(); err != nil {
			q.mu.Unlock()
			return err
		}
	}
}
