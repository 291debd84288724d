// Package parallel provides the fixed-size worker pool pkg/codegen
// fans independent pattern-request searches across. Pattern requests
// are uniform, CPU-bound, non-blocking units of work — unlike the
// long-lived, potentially-blocking relational goals a general-purpose
// constraint solver schedules — so this pool deliberately stays a
// simple static pool: no dynamic scaling, work-stealing, or deadlock
// detection, none of which a batch of independent semantic.Search
// calls ever needs.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrPoolShutdown is returned by Submit once Shutdown has been called.
var ErrPoolShutdown = errors.New("parallel: worker pool is shut down")

// Pool is a fixed-size pool of goroutines draining a shared task
// channel.
type Pool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
	stats        *Stats
}

// NewPool creates a pool with maxWorkers goroutines. maxWorkers <= 0
// defaults to runtime.NumCPU().
func NewPool(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	p := &Pool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
		stats:        NewStats(),
	}
	for i := 0; i < maxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()
	for {
		select {
		case task, ok := <-p.taskChan:
			if !ok {
				return
			}
			task()
			p.stats.RecordCompleted()
		case <-p.shutdownChan:
			return
		}
	}
}

// Submit enqueues task, blocking until a slot is free, ctx is
// cancelled, or the pool has been shut down.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	p.stats.RecordSubmitted()
	select {
	case <-p.shutdownChan:
		p.stats.RecordFailed()
		return ErrPoolShutdown
	default:
	}
	select {
	case p.taskChan <- task:
		return nil
	case <-ctx.Done():
		p.stats.RecordFailed()
		return ctx.Err()
	case <-p.shutdownChan:
		p.stats.RecordFailed()
		return ErrPoolShutdown
	}
}

// Shutdown stops accepting new tasks and waits for in-flight workers
// to drain.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdownChan)
		p.workerWg.Wait()
	})
}

// MaxWorkers returns the pool's fixed worker count.
func (p *Pool) MaxWorkers() int { return p.maxWorkers }

// QueueDepth returns the number of tasks currently queued.
func (p *Pool) QueueDepth() int { return len(p.taskChan) }

// Stats returns the pool's running execution counters.
func (p *Pool) Stats() *Stats { return p.stats }

// Stats tracks simple atomic counters over a Pool's lifetime, trimmed
// from the richer per-sample timeline the original ExecutionStats kept
// (worker-count/queue-depth history, scale-up/down counts) since a
// static pool has nothing to sample: its worker count never changes
// and its queue depth is already exposed directly via QueueDepth.
type Stats struct {
	submitted int64
	completed int64
	failed    int64
}

// NewStats returns a zeroed Stats.
func NewStats() *Stats { return &Stats{} }

// RecordSubmitted increments the submitted-task counter.
func (s *Stats) RecordSubmitted() { atomic.AddInt64(&s.submitted, 1) }

// RecordCompleted increments the completed-task counter.
func (s *Stats) RecordCompleted() { atomic.AddInt64(&s.completed, 1) }

// RecordFailed increments the failed-submission counter (a task that
// was never run because Submit's context was cancelled or the pool
// had already shut down).
func (s *Stats) RecordFailed() { atomic.AddInt64(&s.failed, 1) }

// Submitted returns the number of tasks submitted so far.
func (s *Stats) Submitted() int64 { return atomic.LoadInt64(&s.submitted) }

// Completed returns the number of tasks that ran to completion.
func (s *Stats) Completed() int64 { return atomic.LoadInt64(&s.completed) }

// Failed returns the number of submissions that did not result in a
// task running.
func (s *Stats) Failed() int64 { return atomic.LoadInt64(&s.failed) }
