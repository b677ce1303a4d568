// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	drawqueue "github.com/mkarami/lottostats/internal/adapters/mq/queue"
	workerpool "github.com/mkarami/lottostats/internal/adapters/mq/worker"
	repository "github.com/mkarami/lottostats/internal/adapters/repository"
	"github.com/mkarami/lottostats/internal/adapters/scrape"
	"github.com/mkarami/lottostats/internal/domain/dedupe"
	"github.com/mkarami/lottostats/internal/domain/frequency"
	"github.com/mkarami/lottostats/internal/domain/model"
	"github.com/mkarami/lottostats/internal/domain/optimize"
	"github.com/mkarami/lottostats/internal/domain/stats"
	"github.com/mkarami/lottostats/internal/domain/validate"
	"github.com/mkarami/lottostats/internal/domain/verify"
	"github.com/mkarami/lottostats/pkg/logger"
	"github.com/mkarami/lottostats/pkg/metrics"
)

// Scraper fetches yearly results pages for a game.
type Scraper interface {
	FetchYear(ctx context.Context, v model.Variant, year int) ([]model.RawDraw, error)
}

// ResultCache stores serialized statistics payloads for external readers.
type ResultCache interface {
	SetResult(ctx context.Context, game string, payload []byte) error
}

// snapshot is the latest computed state for one variant.
type snapshot struct {
	result     *stats.Result
	report     verify.Report
	computedAt time.Time
}

// Service implements the API dependencies for the draw statistics system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	drawQueue  drawqueue.Queue
	workerPool *workerpool.Pool
	scraper    Scraper
	cache      ResultCache

	// Latest computed state per game slug
	snapshots map[string]*snapshot

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	maxAttempts     int
	refreshInterval time.Duration

	// State
	started     bool
	stopCh      chan struct{}
	recomputeCh chan string

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10000,
		dedupeSize:  50000,
		maxAttempts: optimize.DefaultMaxAttempts,
		snapshots:   make(map[string]*snapshot),
		stopCh:      make(chan struct{}),
		recomputeCh: make(chan string, len(model.Variants())*4),
		logger:      nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()

	if s.started {
		s.mu.Unlock()
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting draw statistics service...")

	// Initialize components not supplied via options
	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory draw store")
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.drawQueue = drawqueue.NewInMemoryQueue(
		drawqueue.WithCapacity(s.queueSize),
		drawqueue.WithBufferSize(s.queueSize),
	)

	// Create and start the worker pool; the service itself is the
	// recompute scheduler.
	s.workerPool = workerpool.NewPool(s.workerCount, s.drawQueue, s.store, s)
	s.workerPool.Start(ctx)

	s.started = true
	s.mu.Unlock()

	// Compute initial snapshots from whatever the store already holds.
	if err := s.Recompute(ctx); err != nil {
		s.logger.Warn(ctx, "initial recompute failed", logger.Error(err))
	}

	go s.run(ctx)

	s.logger.Info(ctx, "draw statistics service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// run drives scheduled recomputes and periodic refreshes until the service
// stops.
func (s *Service) run(ctx context.Context) {
	var refreshC <-chan time.Time
	if s.refreshInterval > 0 {
		ticker := time.NewTicker(s.refreshInterval)
		defer ticker.Stop()
		refreshC = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case game := <-s.recomputeCh:
			s.drainRecomputes(game)
			if v, ok := model.VariantByName(game); ok {
				if err := s.recomputeGame(ctx, v); err != nil {
					s.logger.Error(ctx, "recompute failed",
						logger.String("game", game),
						logger.Error(err),
					)
				}
			}
		case <-refreshC:
			if _, err := s.Refresh(ctx); err != nil {
				s.logger.Error(ctx, "scheduled refresh failed", logger.Error(err))
			}
		}
	}
}

// drainRecomputes collapses queued requests for the same game into one run.
func (s *Service) drainRecomputes(game string) {
	for {
		select {
		case next := <-s.recomputeCh:
			if next != game {
				// Different game; put it back for the next loop turn.
				select {
				case s.recomputeCh <- next:
				default:
				}
				return
			}
		default:
			return
		}
	}
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping draw statistics service...")

	// Stop worker pool
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	// Close draw store
	if s.store != nil {
		if closer, ok := s.store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	// Close queue
	if q, ok := s.drawQueue.(*drawqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	// Signal background loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "draw statistics service stopped")
}

// ScheduleRecompute queues a statistics recomputation for a game. Non-blocking;
// a full schedule channel means a recompute is already pending.
func (s *Service) ScheduleRecompute(game string) {
	select {
	case s.recomputeCh <- game:
	default:
	}
}

// IngestDraws validates, deduplicates, and enqueues a batch of submitted
// draw records for async persistence.
func (s *Service) IngestDraws(ctx context.Context, game string, draws []model.RawDraw) (model.IngestOutcome, error) {
	var out model.IngestOutcome

	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return out, ErrNotStarted
	}

	v, ok := model.VariantByName(game)
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}

	for _, draw := range draws {
		// Records missing the special ball are stored anyway; the engine
		// excludes them at tabulation. Only structurally broken records
		// are refused outright.
		if strings.TrimSpace(draw.Date) == "" || len(draw.Numbers) != model.RegularCount {
			out.Rejected++
			metrics.RecordDrawsRejected(v.Slug, 1)
			continue
		}

		key := dedupe.Key(v.Slug, draw)
		if s.deduper.SeenAndRecord(ctx, key) {
			out.Duplicates++
			metrics.RecordDrawDuplicate(v.Slug)
			continue
		}

		if !s.drawQueue.Enqueue(ctx, model.Submission{Game: v.Slug, Draw: draw}) {
			// Roll back the "seen" status so the record can be retried.
			s.deduper.Unrecord(ctx, key)
			return out, fmt.Errorf("%w: draw queue full", ErrBackpressure)
		}
		out.Accepted++
	}

	return out, nil
}

// Recompute rebuilds the statistics snapshot for every supported game.
func (s *Service) Recompute(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, v := range model.Variants() {
		v := v
		g.Go(func() error {
			return s.recomputeGame(ctx, v)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("recompute: %w", err)
	}
	return nil
}

// recomputeGame rebuilds one variant's snapshot from the stored records.
func (s *Service) recomputeGame(ctx context.Context, v model.Variant) error {
	start := time.Now()

	raws, err := s.store.List(ctx, v.Slug)
	if err != nil {
		metrics.RecordErrorByComponent("engine", "store_list")
		return fmt.Errorf("list draws for %s: %w", v.Slug, err)
	}

	valid, rejected := validate.Partition(raws)
	tally := frequency.Tabulate(valid, v)

	report := verify.Run(tally)
	for _, check := range report.Failed() {
		metrics.RecordConsistencyFailure(v.Slug, check.Name)
		s.logger.Warn(ctx, "consistency check failed",
			logger.String("game", v.Slug),
			logger.String("check", check.Name),
			logger.String("detail", check.Detail),
		)
	}

	byPosition := optimize.ByPosition(tally, v, s.maxAttempts)
	byGlobal := optimize.ByGlobalFrequency(tally, v, s.maxAttempts)
	result := stats.Assemble(v, tally, byPosition, byGlobal)

	s.mu.Lock()
	s.snapshots[v.Slug] = &snapshot{result: result, report: report, computedAt: time.Now()}
	s.mu.Unlock()

	metrics.RecordRecompute(v.Slug, time.Since(start).Seconds())
	metrics.UpdateStoredDraws(v.Slug, len(raws))

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.SetResult(ctx, v.Slug, payload); err != nil {
				metrics.RecordErrorByComponent("cache", "set_failed")
				s.logger.Warn(ctx, "result cache write failed",
					logger.String("game", v.Slug),
					logger.Error(err),
				)
			}
		}
	}

	s.logger.Info(ctx, "recomputed statistics",
		logger.String("game", v.Slug),
		logger.Int("validDraws", tally.ValidDraws),
		logger.Int("excluded", rejected),
		logger.Float64("seconds", time.Since(start).Seconds()),
	)

	return nil
}

// Refresh starts a scrape-and-ingest run in the background and returns its
// run ID.
func (s *Service) Refresh(ctx context.Context) (string, error) {
	s.mu.RLock()
	started := s.started
	scraper := s.scraper
	s.mu.RUnlock()

	if !started {
		return "", ErrNotStarted
	}
	if scraper == nil {
		return "", fmt.Errorf("refresh: no scraper configured")
	}

	runID := uuid.NewString()
	go s.refreshRun(context.WithoutCancel(ctx), runID)
	return runID, nil
}

// refreshRun fetches new draws for every variant and appends them to the
// store.
func (s *Service) refreshRun(ctx context.Context, runID string) {
	s.logger.Info(ctx, "refresh run started", logger.String("runID", runID))

	g, ctx := errgroup.WithContext(ctx)
	for _, v := range model.Variants() {
		v := v
		g.Go(func() error {
			return s.refreshGame(ctx, runID, v)
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error(ctx, "refresh run failed",
			logger.String("runID", runID),
			logger.Error(err),
		)
		return
	}

	s.logger.Info(ctx, "refresh run finished", logger.String("runID", runID))
}

func (s *Service) refreshGame(ctx context.Context, runID string, v model.Variant) error {
	since := ""
	fromYear := time.Now().Year()

	latest, err := s.store.Latest(ctx, v.Slug)
	switch {
	case err == nil:
		since = latest.Date
		if t, perr := time.Parse(validate.DateLayout, latest.Date); perr == nil {
			fromYear = t.Year()
		}
	case errors.Is(err, repository.ErrNoDraws):
		// Empty store; bootstrap from the current year only.
	default:
		return fmt.Errorf("latest draw for %s: %w", v.Slug, err)
	}

	added := 0
	for year := fromYear; year <= time.Now().Year(); year++ {
		page, err := s.scraper.FetchYear(ctx, v, year)
		if err != nil {
			return fmt.Errorf("fetch %s %d: %w", v.Slug, year, err)
		}

		for _, draw := range scrape.FilterAfter(page, since) {
			ok, err := s.store.Append(ctx, v.Slug, draw)
			if err != nil {
				return fmt.Errorf("append %s %s: %w", v.Slug, draw.Date, err)
			}
			if ok {
				added++
				metrics.RecordDrawIngested(v.Slug)
			}
		}
	}

	s.logger.Info(ctx, "refreshed game",
		logger.String("runID", runID),
		logger.String("game", v.Slug),
		logger.String("since", since),
		logger.Int("added", added),
	)

	if added > 0 {
		s.ScheduleRecompute(v.Slug)
	}
	return nil
}

// Statistics returns the latest assembled result for a game.
func (s *Service) Statistics(ctx context.Context, game string) (stats.Result, error) {
	v, ok := model.VariantByName(game)
	if !ok {
		return stats.Result{}, fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}

	s.mu.RLock()
	snap := s.snapshots[v.Slug]
	s.mu.RUnlock()

	if snap == nil {
		return stats.Result{}, ErrNotComputed
	}
	return *snap.result, nil
}

// Diagnostics returns the consistency report for a game's latest tally.
func (s *Service) Diagnostics(ctx context.Context, game string) (verify.Report, error) {
	v, ok := model.VariantByName(game)
	if !ok {
		return verify.Report{}, fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}

	s.mu.RLock()
	snap := s.snapshots[v.Slug]
	s.mu.RUnlock()

	if snap == nil {
		return verify.Report{}, ErrNotComputed
	}
	return snap.report, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	out := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.drawQueue.Len(ctx)
		out["queueLength"] = queueLen
		metrics.UpdateQueueSize(queueLen)

		games := map[string]interface{}{}
		for _, v := range model.Variants() {
			if count, err := s.store.Count(ctx, v.Slug); err == nil {
				games[v.Slug] = count
				metrics.UpdateStoredDraws(v.Slug, count)
			}
		}
		out["storedDraws"] = games

		recomputed := map[string]interface{}{}
		for _, v := range model.Variants() {
			if snap := s.snapshots[v.Slug]; snap != nil {
				recomputed[v.Slug] = snap.computedAt.Format(time.RFC3339)
			}
		}
		out["lastRecompute"] = recomputed
	}

	return out
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
