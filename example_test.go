package boundedqueue_test

import (
	"context"
	"fmt"
	"time"

	"github.com/xyhelper/boundedqueue"
)

func Example_basic() {
	q := boundedqueue.New[string](2)
	go func() {
		// Producer: push everything, then signal end-of-stream.
		q.Push("a")
		q.Push("b")
		q.Push("c") // blocks until the consumer makes room
		q.Finish()
	}()

	// Consumer: drain until the queue reports end-of-stream.
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		fmt.Println(v)
	}
	// Output:
	// a
	// b
	// c
}

func Example_context() {
	q := boundedqueue.New[int](4)

	// An empty, open queue blocks Pop; the deadline bounds the wait.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := q.PopContext(ctx)
	fmt.Println(boundedqueue.IsContextError(err))

	// A finished, drained queue reports ErrDrained instead.
	q.Finish()
	_, err = q.PopContext(context.Background())
	fmt.Println(err == boundedqueue.ErrDrained)
	// Output:
	// true
	// true
}
