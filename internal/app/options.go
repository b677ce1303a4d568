package service

import (
	"time"

	repository "github.com/mkarami/lottostats/internal/adapters/repository"
	"github.com/mkarami/lottostats/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the draw queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStore sets the draw store. Defaults to an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithScraper sets the results-site scraper used by refresh runs.
func WithScraper(scraper Scraper) Option {
	return func(s *Service) {
		if scraper != nil {
			s.scraper = scraper
		}
	}
}

// WithResultCache sets an optional cache for assembled statistics payloads.
func WithResultCache(cache ResultCache) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithOptimizerMaxAttempts bounds the optimized-combination search.
func WithOptimizerMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithRefreshInterval enables periodic scrape-and-recompute runs.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.refreshInterval = interval
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
