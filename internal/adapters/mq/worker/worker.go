// Package worker defines worker contracts for asynchronous draw persistence.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/mkarami/lottostats/internal/domain/model"
	"github.com/mkarami/lottostats/pkg/logger"
	"github.com/mkarami/lottostats/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 4 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Record abstracts what workers read off the queue.
type Record = model.Submission

// Appender persists a draw record for a game.
type Appender interface {
	// Append stores the record. It reports false when an identical record
	// was already stored.
	Append(ctx context.Context, game string, draw model.RawDraw) (bool, error)
}

// Scheduler is notified when a game's stored draws changed and its
// statistics need recomputing.
type Scheduler interface {
	ScheduleRecompute(game string)
}

// Queue defines how workers receive records.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Record
}

// Worker drains submissions off the queue and persists them.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	// It will process any remaining records before stopping.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for processing draw submissions.
type InMemoryWorker struct {
	queue     Queue
	store     Appender
	scheduler Scheduler
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, store Appender, scheduler Scheduler, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		store:     store,
		scheduler: scheduler,
		name:      "worker", // default name
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"), // will be updated by options
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	// Set up logger with worker name if not already set
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer func() {
		close(w.done)
	}()

	recChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case rec, ok := <-recChan:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			if err := w.processRecord(ctx, rec); err != nil {
				w.logger.Error(ctx, "error processing record", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	// Signal shutdown
	close(w.shutdown)

	// Wait for worker to finish or context to timeout
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processRecord persists a single submission and schedules a recompute when
// the store actually changed.
func (w *InMemoryWorker) processRecord(ctx context.Context, rec Record) error {
	added, err := w.store.Append(ctx, rec.Game, rec.Draw)
	if err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "store_append")
		w.logger.Error(ctx, "store append failed",
			logger.String("game", rec.Game),
			logger.String("date", rec.Draw.Date),
			logger.Error(err),
		)
		return fmt.Errorf("failed to append draw for %s: %w", rec.Game, err)
	}

	if added {
		metrics.RecordDrawIngested(rec.Game)
		if w.scheduler != nil {
			w.scheduler.ScheduleRecompute(rec.Game)
		}
	} else {
		metrics.RecordDrawDuplicate(rec.Game)
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers   []*InMemoryWorker
	queue     Queue
	store     Appender
	scheduler Scheduler

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, store Appender, scheduler Scheduler) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:   make([]*InMemoryWorker, workerCount),
		queue:     queue,
		store:     store,
		scheduler: scheduler,
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			store,
			scheduler,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	// Signal shutdown to all workers
	close(p.shutdown)

	// Wait for all workers to finish
	for _, worker := range p.workers {
		select {
		case <-worker.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	// First close the queue to stop new records
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	// Signal shutdown to all workers
	close(p.shutdown)

	// Wait for all workers to finish or context to timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerCount(0)

	return nil
}
