package workers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/xyhelper/boundedqueue"
)

// ProducerFunc generates items. It pushes each item through emit, which
// blocks when the queue is full, and returns when it has nothing more to
// produce. A non-nil error is collected and reported by [Group.Wait].
type ProducerFunc[T any] func(ctx context.Context, emit func(T)) error

// ConsumerFunc processes a single item taken from the queue.
// A non-nil error is collected; the consumer keeps draining.
type ConsumerFunc[T any] func(ctx context.Context, item T) error

// Group coordinates producer and consumer goroutines sharing one queue.
// Register workers with Produce and Consume, then call Wait. All
// registrations must happen before Wait is called.
type Group[T any] struct {
	queue  *boundedqueue.Queue[T]
	ctx    context.Context
	cancel context.CancelFunc
	log    *logrus.Logger

	producers sync.WaitGroup
	consumers sync.WaitGroup

	nProducers atomic.Int64
	nConsumers atomic.Int64
	produced   atomic.Int64
	consumed   atomic.Int64
	highWater  atomic.Int64

	finishOnce sync.Once

	errMu sync.Mutex
	errs  []error
}

// Stats is a point-in-time snapshot of group activity.
type Stats struct {
	Produced  int64 // items pushed by all producers
	Consumed  int64 // items taken by all consumers
	Pending   int   // items currently queued
	HighWater int64 // largest queue length observed after a push
	Producers int64 // registered producers
	Consumers int64 // registered consumers
}

// Option configures a [Group].
type Option func(*config)

type config struct {
	log *logrus.Logger
}

// WithLogger sets the logger for worker lifecycle events, emitted at debug
// level. The default logger discards everything. Panics if l is nil.
func WithLogger(l *logrus.Logger) Option {
	if l == nil {
		panic("workers: WithLogger requires non-nil logger")
	}
	return func(c *config) {
		c.log = l
	}
}

// New creates a group around q. Panics if q is nil.
// A nil ctx defaults to context.Background.
func New[T any](ctx context.Context, q *boundedqueue.Queue[T], opts ...Option) *Group[T] {
	if q == nil {
		panic("workers: New requires non-nil queue")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = logrus.New()
		cfg.log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Group[T]{
		queue:  q,
		ctx:    ctx,
		cancel: cancel,
		log:    cfg.log,
	}
}

// Queue returns the group's shared queue.
func (g *Group[T]) Queue() *boundedqueue.Queue[T] {
	return g.queue
}

// Produce starts a named producer goroutine running fn.
// The emit callback passed to fn pushes to the shared queue, blocking while
// the queue is full.
func (g *Group[T]) Produce(name string, fn ProducerFunc[T]) {
	g.nProducers.Add(1)
	g.producers.Add(1)
	go func() {
		defer g.producers.Done()
		g.log.WithField("producer", name).Debug("producer started")

		emit := func(v T) {
			g.queue.Push(v)
			g.produced.Add(1)
			g.observeDepth()
		}
		if err := fn(g.ctx, emit); err != nil {
			g.record(fmt.Errorf("producer %s: %w", name, err))
		}

		g.log.WithField("producer", name).Debug("producer finished")
	}()
}

// Consume starts a named consumer goroutine. It takes items from the queue
// and applies fn to each, stopping when the queue is drained or the group's
// context is cancelled.
func (g *Group[T]) Consume(name string, fn ConsumerFunc[T]) {
	g.nConsumers.Add(1)
	g.consumers.Add(1)
	go func() {
		defer g.consumers.Done()
		g.log.WithField("consumer", name).Debug("consumer started")

		for {
			v, err := g.queue.PopContext(g.ctx)
			if err != nil {
				if !errors.Is(err, boundedqueue.ErrDrained) {
					g.record(fmt.Errorf("consumer %s: %w", name, err))
				}
				g.log.WithField("consumer", name).Debug("consumer finished")
				return
			}
			g.consumed.Add(1)
			if err := fn(g.ctx, v); err != nil {
				g.record(fmt.Errorf("consumer %s: %w", name, err))
			}
		}
	}()
}

// Wait joins all producers, finishes the queue, then joins all consumers.
// Returns the joined errors from all failed workers.
// Safe to call multiple times; subsequent calls return the same result.
func (g *Group[T]) Wait() error {
	g.producers.Wait()
	g.finishOnce.Do(g.queue.Finish)
	g.consumers.Wait()
	g.cancel()

	g.errMu.Lock()
	defer g.errMu.Unlock()
	return errors.Join(g.errs...)
}

// Cancel stops the group early: blocked consumers give up on their next
// wait. Producers are expected to honor ctx themselves.
func (g *Group[T]) Cancel() {
	g.cancel()
}

// Stats returns a point-in-time snapshot of group activity.
// Safe to call concurrently; counters may be mid-update.
func (g *Group[T]) Stats() Stats {
	return Stats{
		Produced:  g.produced.Load(),
		Consumed:  g.consumed.Load(),
		Pending:   g.queue.Len(),
		HighWater: g.highWater.Load(),
		Producers: g.nProducers.Load(),
		Consumers: g.nConsumers.Load(),
	}
}

func (g *Group[T]) record(err error) {
	g.errMu.Lock()
	g.errs = append(g.errs, err)
	g.errMu.Unlock()
}

// observeDepth folds the current queue length into the high-water mark.
// The sample is advisory, like Queue.Len itself.
func (g *Group[T]) observeDepth() {
	n := int64(g.queue.Len())
	for {
		cur := g.highWater.Load()
		if n <= cur || g.highWater.CompareAndSwap(cur, n) {
			return
		}
	}
}
