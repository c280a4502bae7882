//go:build unix

package boundedqueue

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func processCPUTime(t *testing.T) time.Duration {
	t.Helper()
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		t.Fatalf("getrusage: %v", err)
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}

// A consumer parked on an empty queue must suspend on the condition variable,
// not poll: half a second of idle waiting should cost close to zero CPU.
func TestIdleWaitBurnsNoCPU(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	q := New[int](1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, ok := q.Pop(); ok {
			t.Error("expected ok=false after Finish")
		}
	}()

	// Let the consumer park before sampling.
	time.Sleep(20 * time.Millisecond)
	before := processCPUTime(t)
	time.Sleep(500 * time.Millisecond)
	burned := processCPUTime(t) - before

	q.Finish()
	<-done

	// Generous bound: a polling loop would burn most of the 500ms.
	if burned > 50*time.Millisecond {
		t.Fatalf("idle wait consumed %v CPU; waiter appears to be polling", burned)
	}
}
