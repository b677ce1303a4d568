package importdraws

import (
	"context"
	"fmt"
	"time"

	"github.com/mkarami/lottostats/pkg/logger"
)

// Run executes the complete draw import.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting draw import",
		logger.String("baseURL", config.BaseURL),
		logger.String("file", config.File),
		logger.Int("batchSize", config.BatchSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Load the draws file
	byGame, err := readDrawsFile(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("reading draws failed: %w", err)
	}

	// Step 3: Submit draw batches concurrently
	if err := submitDraws(ctx, config, byGame, stats); err != nil {
		return fmt.Errorf("draw submission failed: %w", err)
	}

	// Step 4: Wait for ingestion and recomputation
	logger.Get().Info(ctx, "waiting for draws to be processed")
	time.Sleep(ProcessingDelay)

	// Step 5: Verify statistics per game
	if config.Verify {
		if err := verifyStatistics(ctx, config, byGame, stats); err != nil {
			return fmt.Errorf("statistics verification failed: %w", err)
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "import completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final import statistics.
func displayFinalStats(stats *Stats) {
	var successRate, drawsPerSecond float64

	if stats.DrawsRead > 0 {
		successRate = float64(stats.DrawsAccepted+stats.DrawsDuplicate) / float64(stats.DrawsRead) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		drawsPerSecond = float64(stats.DrawsRead) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("drawsRead", stats.DrawsRead),
		logger.Int("batchesSubmitted", stats.BatchesSubmitted),
		logger.Int("batchesFailed", stats.BatchesFailed),
		logger.Int("drawsAccepted", stats.DrawsAccepted),
		logger.Int("drawsDuplicate", stats.DrawsDuplicate),
		logger.Int("drawsRejected", stats.DrawsRejected),
		logger.Int("gamesVerified", stats.GamesVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("drawsPerSecond", drawsPerSecond))
}
