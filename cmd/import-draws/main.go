package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mkarami/lottostats/internal/importdraws"
)

// Default configuration constants.
const (
	defaultBatchSize     = 500
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultImportTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		file      = flag.String("file", "", "Path to the JSON draws file")
		game      = flag.String("game", "", "Game name when the file holds a bare draw array")
		batchSize = flag.Int("batch", defaultBatchSize, "Draws per submission request")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile   = flag.String("log", "", "Log file for import output (default: import_log_TIMESTAMP.log)")
		verify    = flag.Bool("verify", true, "Verify statistics after importing")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || *file == "" {
		importdraws.ShowHelp()
		return
	}

	// Setup logging
	if err := importdraws.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultImportTimeout)
	defer cancel()

	// Create import configuration
	config := &importdraws.Config{
		BaseURL:   *baseURL,
		File:      *file,
		Game:      *game,
		BatchSize: *batchSize,
		Workers:   *workers,
		Timeout:   *timeout,
		LogFile:   *logFile,
		Verbose:   *verbose,
		Verify:    *verify,
	}

	// Run the import
	if err := importdraws.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Import failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
