// Package task runs best-effort side effects after the primary request has
// committed. Jobs are isolated: a failing or slow job is logged and dropped,
// never surfaced to the request that queued it.
package task

import (
	"context"
	"log"
	"sync"
	"time"
)

type job struct {
	name string
	fn   func(ctx context.Context) error
}

// Dispatcher owns a bounded queue and a fixed pool of workers.
type Dispatcher struct {
	jobs    chan job
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts workers goroutines consuming a queue of queueSize.
// Each job runs under its own context bounded by timeout.
func NewDispatcher(workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		jobs:    make(chan job, queueSize),
		timeout: timeout,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.run(j)
	}
}

func (d *Dispatcher) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("task %s panicked: %v", j.name, r)
		}
	}()

	ctx := context.Background()
	var cancel context.CancelFunc
	if d.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := j.fn(ctx); err != nil {
		log.Printf("task %s failed: %v", j.name, err)
	}
}

// Submit enqueues a job without blocking the caller. If the queue is full or
// the dispatcher has shut down, the job is dropped with a log line; the
// already-committed primary operation stands regardless.
func (d *Dispatcher) Submit(name string, fn func(ctx context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Printf("task %s dropped: dispatcher is shut down", name)
		return
	}

	select {
	case d.jobs <- job{name: name, fn: fn}:
	default:
		log.Printf("task %s dropped: queue full", name)
	}
}

// Shutdown stops accepting jobs and waits for in-flight ones to finish,
// up to the given context's deadline.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("dispatcher shutdown timed out: %v", ctx.Err())
	}
}
