package boundedqueue

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPopContextBlocksAndWakes(t *testing.T) {
	q := New[string](4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		v, err := q.PopContext(ctx)
		if err != nil || v != "x" {
			t.Errorf("pop got (%q,%v)", v, err)
		}
	}()
	time.Sleep(10 * time.Millisecond)
	q.Push("x")
	<-done
}

func TestPopContextCancel(t *testing.T) {
	q := New[int](4)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := q.PopContext(ctx)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !IsContextError(err) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestPopContextDrained(t *testing.T) {
	q := New[int](4)
	q.Push(7)
	q.Finish()

	v, err := q.PopContext(context.Background())
	if err != nil || v != 7 {
		t.Fatalf("pop got (%v,%v) want (7,nil)", v, err)
	}
	if _, err := q.PopContext(context.Background()); !errors.Is(err, ErrDrained) {
		t.Fatalf("expected ErrDrained, got %v", err)
	}
	// ErrDrained is end-of-stream, not a cancellation.
	if IsContextError(ErrDrained) {
		t.Fatal("ErrDrained must not be a context error")
	}
}

func TestPopContextFinishWhileWaiting(t *testing.T) {
	q := New[int](4)
	done := make(chan error, 1)
	go func() {
		_, err := q.PopContext(context.Background())
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)
	q.Finish()
	select {
	case err := <-done:
		if !errors.Is(err, ErrDrained) {
			t.Fatalf("expected ErrDrained, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("consumer still blocked after Finish")
	}
}

func TestPushContextCancelWhileFull(t *testing.T) {
	q := New[int](1)
	q.Push(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.PushContext(ctx, 2)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if q.Len() != 1 {
		t.Fatalf("len = %d want 1; cancelled push must not append", q.Len())
	}
}

func TestPushContextWaitsForRoom(t *testing.T) {
	q := New[int](1)
	q.Push(1)

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		done <- q.PushContext(ctx, 2)
	}()

	time.Sleep(10 * time.Millisecond)
	if v, ok := q.Pop(); !ok || v != 1 {
		t.Fatalf("pop = %v,%v want 1,true", v, ok)
	}
	if err := <-done; err != nil {
		t.Fatalf("push after room freed: %v", err)
	}
	if v, ok := q.Pop(); !ok || v != 2 {
		t.Fatalf("pop = %v,%v want 2,true", v, ok)
	}
}

func TestPopContextNilContext(t *testing.T) {
	q := New[int](1)
	q.Push(3)
	v, err := q.PopContext(nil) //nolint:staticcheck // nil ctx defaults to Background
	if err != nil || v != 3 {
		t.Fatalf("pop got (%v,%v) want (3,nil)", v, err)
	}
}
