// Package queue defines the contract for enqueuing and consuming draw
// submissions.
//
// Implementations may use channels or more advanced structures. The service
// starts with an in-memory bounded queue.
package queue

import (
	"context"
	"sync"

	"github.com/mkarami/lottostats/internal/domain/model"
	"github.com/mkarami/lottostats/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 10000
	defaultBufferSize    = 10000
)

// Record represents the payload type flowing through the queue.
type Record = model.Submission

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a record to the queue.
	// Returns false if the queue is full and the record was not enqueued.
	Enqueue(ctx context.Context, r Record) bool

	// Dequeue returns a channel that will receive records as they become
	// available. The channel will be closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Record

	// Len returns the current number of queued records.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	// After closing, no new records can be enqueued and the dequeue channel
	// will be closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	records    chan Record
	capacity   int
	bufferSize int
	mu         sync.RWMutex
	closed     bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity:   defaultQueueCapacity,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.records = make(chan Record, q.bufferSize)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a record to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, r Record) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError("closed")
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	// Check if we're at capacity
	if len(q.records) >= q.capacity {
		metrics.RecordQueueEnqueueError("capacity_exceeded")
		metrics.RecordErrorByComponent("queue", "capacity_exceeded")
		return false
	}

	select {
	case q.records <- r:
		metrics.RecordQueueEnqueue()
		currentSize := len(q.records)
		metrics.UpdateQueueSize(currentSize)
		metrics.UpdateQueueUtilization(float64(currentSize) / float64(q.capacity))
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError("context_cancelled")
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError("queue_full")
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that will receive records as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Record {
	// Wrap the channel to track dequeue metrics
	dequeueChan := make(chan Record)
	go func() {
		defer close(dequeueChan)
		for record := range q.records {
			select {
			case dequeueChan <- record:
				metrics.RecordQueueDequeue()
				currentSize := len(q.records)
				metrics.UpdateQueueSize(currentSize)
				metrics.UpdateQueueUtilization(float64(currentSize) / float64(q.capacity))
			case <-ctx.Done():
				return
			}
		}
	}()
	return dequeueChan
}

// Len returns the current number of queued records.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	size := len(q.records)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	close(q.records)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
