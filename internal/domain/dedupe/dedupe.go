// Package dedupe provides idempotency tracking for the draw ingest path.
package dedupe

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mkarami/lottostats/internal/domain/model"
)

// Deduper records seen draw keys to ensure a draw is stored at most once
// per ingest lifetime.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if
	// not. Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key, allowing the draw to be retried after a
	// failed store append or queue backpressure.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// Key derives the ingest identity of a raw draw within a game: the game
// name, the date string, the numbers in drawn order, and the special ball
// ("-" when absent, so malformed records still dedupe).
func Key(game string, r model.RawDraw) string {
	nums := make([]string, len(r.Numbers))
	for i, n := range r.Numbers {
		nums[i] = strconv.Itoa(n)
	}
	special := "-"
	if r.SpecialBall != nil {
		special = strconv.Itoa(*r.SpecialBall)
	}
	return game + "|" + r.Date + "|" + strings.Join(nums, ",") + "|" + special
}

// inMemoryDeduper implements Deduper with a map plus a FIFO eviction ring.
// Bounded mode (maxSize > 0) evicts the oldest keys once full; unbounded
// mode keeps everything.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(ctx context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}

	if d.maxSize > 0 {
		if old := d.ring[d.next]; old != "" {
			delete(d.seen, old)
			d.size.Add(-1)
		}
		d.ring[d.next] = key
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(ctx context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; !ok {
		return
	}
	delete(d.seen, key)
	d.size.Add(-1)
	for i, k := range d.ring {
		if k == key {
			d.ring[i] = ""
			break
		}
	}
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
