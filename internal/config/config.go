// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DrawQueueSize bounds the in-memory draw submission queue.
	DrawQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// OptimizerMaxAttempts bounds the optimized-combination search.
	OptimizerMaxAttempts int `koanf:"optimizer_max_attempts"`

	// ScrapeBaseURL is the results site root, e.g. "https://www.lottery.net".
	ScrapeBaseURL string `koanf:"scrape_base_url"`

	// ScrapeTimeoutMS bounds one results-page fetch.
	ScrapeTimeoutMS int `koanf:"scrape_timeout_ms"`

	// ScrapeUserAgent overrides the User-Agent header on scrape requests.
	ScrapeUserAgent string `koanf:"scrape_user_agent"`

	// RefreshIntervalMin enables periodic scrape runs when positive.
	RefreshIntervalMin int `koanf:"refresh_interval_min"`

	// PostgresDSN enables the PostgreSQL draw store when set. Empty keeps
	// the in-memory store.
	PostgresDSN string `koanf:"postgres_dsn"`

	// RedisURL enables the statistics result cache when set.
	RedisURL string `koanf:"redis_url"`

	// StatsCacheTTLMin sets the lifetime of cached statistics payloads.
	StatsCacheTTLMin int `koanf:"stats_cache_ttl_min"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		DrawQueueSize:        10_000,
		WorkerCount:          runtime.NumCPU() * 2,
		DedupeSize:           50_000,
		OptimizerMaxAttempts: 100,
		ScrapeBaseURL:        "https://www.lottery.net",
		ScrapeTimeoutMS:      30_000,
		RefreshIntervalMin:   0,
		StatsCacheTTLMin:     15,
	}
	return c
}
