// Command pcdemo runs producers and consumers against a bounded queue and
// prints a summary of the run. With a small capacity and slow consumers the
// producers visibly block on backpressure instead of growing the queue.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"

	"github.com/xyhelper/boundedqueue"
	"github.com/xyhelper/boundedqueue/workers"
)

func main() {
	var capacity, producers, consumers, items int
	var produceDelay, consumeDelay time.Duration
	var level string

	flag.IntVar(&capacity, "capacity", 3, "queue capacity")
	flag.IntVar(&producers, "producers", 1, "number of producers")
	flag.IntVar(&consumers, "consumers", 1, "number of consumers")
	flag.IntVar(&items, "items", 10, "items per producer")
	flag.DurationVar(&produceDelay, "produce-delay", 0, "delay between pushes")
	flag.DurationVar(&consumeDelay, "consume-delay", 10*time.Millisecond, "processing time per item")
	flag.StringVar(&level, "l", "INFO", "log level")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(os.Stderr)

	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		log.Fatalf("unknown log level: %s", level)
	}

	q := boundedqueue.New[int](capacity)
	g := workers.New(context.Background(), q, workers.WithLogger(log.StandardLogger()))

	start := time.Now()

	for p := 0; p < producers; p++ {
		p := p
		g.Produce(fmt.Sprintf("producer-%d", p), func(ctx context.Context, emit func(int)) error {
			for i := 1; i <= items; i++ {
				if produceDelay > 0 {
					time.Sleep(produceDelay)
				}
				emit(p*items + i)
				log.Debugf("producer-%d pushed item %d (queue len %d)", p, p*items+i, q.Len())
			}
			return nil
		})
	}

	for c := 0; c < consumers; c++ {
		c := c
		g.Consume(fmt.Sprintf("consumer-%d", c), func(ctx context.Context, item int) error {
			log.Debugf("consumer-%d got item %d", c, item)
			time.Sleep(consumeDelay)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("run failed: %v", err)
	}
	elapsed := time.Since(start)

	// After Finish and a full drain, a final pop must report end-of-stream
	// without blocking.
	if _, ok := q.TryPop(); ok {
		log.Fatal("queue not drained after Wait")
	}

	stats := g.Stats()
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Capacity", capacity},
		{"Producers", stats.Producers},
		{"Consumers", stats.Consumers},
		{"Produced", stats.Produced},
		{"Consumed", stats.Consumed},
		{"High-water mark", stats.HighWater},
		{"Elapsed", elapsed.Round(time.Millisecond)},
	})
	t.Render()
}
