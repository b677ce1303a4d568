package importdraws

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mkarami/lottostats/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "import_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the draw import tool.
func ShowHelp() {
	os.Stdout.WriteString(`Lottostats Draw Import Tool
===========================

Imports historical draw records from a JSON file into a running
lottostats service.

The input file holds either a map of game name to draw array:

  {"powerball": [{"date": "2024-01-03", "numbers": [1, 2, 3, 4, 5], "specialBall": 6}], "mega-millions": [...]}

or a bare draw array, in which case -game is required.

Usage:
  go run cmd/import-draws/main.go -file draws.json [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -file string
        Path to the JSON draws file (required)
  -game string
        Game name when the file holds a bare draw array
  -batch int
        Draws per submission request (default 500)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for import output (default: import_log_TIMESTAMP.log)
  -verify
        Verify statistics and diagnostics after importing (default true)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Import a full export
  go run cmd/import-draws/main.go -file draws.json

  # Import a single game's draw list
  go run cmd/import-draws/main.go -file powerball.json -game powerball

  # Import against a non-default address without verification
  go run cmd/import-draws/main.go -file draws.json -url http://localhost:8080 -verify=false
`)
}
