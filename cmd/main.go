package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/mkarami/lottostats/internal/adapters/cache"
	"github.com/mkarami/lottostats/internal/adapters/http/api"
	"github.com/mkarami/lottostats/internal/adapters/http/site"
	"github.com/mkarami/lottostats/internal/adapters/http/swagger"
	"github.com/mkarami/lottostats/internal/adapters/repository"
	"github.com/mkarami/lottostats/internal/adapters/scrape"
	service "github.com/mkarami/lottostats/internal/app"
	"github.com/mkarami/lottostats/internal/config"
	"github.com/mkarami/lottostats/pkg/logger"
	"github.com/mkarami/lottostats/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Error(err)
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	scrapeOpts := []scrape.Option{
		scrape.WithBaseURL(cfg.ScrapeBaseURL),
		scrape.WithTimeout(time.Duration(cfg.ScrapeTimeoutMS) * time.Millisecond),
		scrape.WithLogger(loggerInstance),
	}
	if cfg.ScrapeUserAgent != "" {
		scrapeOpts = append(scrapeOpts, scrape.WithUserAgent(cfg.ScrapeUserAgent))
	}

	svcOpts := []service.Option{
		service.WithLogger(loggerInstance),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithQueueSize(cfg.DrawQueueSize),
		service.WithDedupeSize(cfg.DedupeSize),
		service.WithOptimizerMaxAttempts(cfg.OptimizerMaxAttempts),
		service.WithScraper(scrape.NewClient(scrapeOpts...)),
	}

	// Durable store when a DSN is configured; in-memory otherwise.
	if cfg.PostgresDSN != "" {
		store, err := repository.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			os.Stderr.WriteString("failed to connect to postgres: " + err.Error() + "\n")
			return
		}
		defer store.Close()
		svcOpts = append(svcOpts, service.WithStore(store))
	}

	// Optional statistics cache.
	if cfg.RedisURL != "" {
		resultCache, err := cache.New(ctx, cfg.RedisURL, time.Duration(cfg.StatsCacheTTLMin)*time.Minute)
		if err != nil {
			os.Stderr.WriteString("failed to connect to redis: " + err.Error() + "\n")
			return
		}
		defer resultCache.Close()
		svcOpts = append(svcOpts, service.WithResultCache(resultCache))
	}

	if cfg.RefreshIntervalMin > 0 {
		svcOpts = append(svcOpts, service.WithRefreshInterval(time.Duration(cfg.RefreshIntervalMin)*time.Minute))
	}

	// Create and start the service with configuration options
	svc := service.New(svcOpts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register the landing page under / and API docs under /api-docs
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average GC pause over the life of the process.
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics updates service-level metrics.
func updateServiceMetrics(svc *service.Service) {
	stats := svc.GetStats()

	if queueLen, ok := stats["queueLength"].(int); ok {
		metrics.UpdateQueueSize(queueLen)
	}

	if workerCount, ok := stats["workerCount"].(int); ok {
		metrics.UpdateWorkerCount(workerCount)
	}
}
