package importdraws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitDraws submits draw batches concurrently using a worker pool.
func submitDraws(ctx context.Context, config *Config, byGame map[string][]Draw, stats *Stats) error {
	var batches []Batch
	for game, draws := range byGame {
		batches = append(batches, splitBatches(game, draws, config.BatchSize)...)
	}

	log.Printf("Submitting %d batches with %d workers...", len(batches), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/draws"

	// Counters for statistics
	var (
		accepted  int64
		duplicate int64
		rejected  int64
		failed    int64
		submitted int64
	)

	// Create worker pool
	batchChan := make(chan Batch, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for batch := range batchChan {
				select {
				case <-ctx.Done():
					return
				default:
					ack, err := submitSingleBatch(ctx, client, url, batch)
					done := atomic.AddInt64(&submitted, 1)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						log.Printf("batch failed (%s, %d draws): %v", batch.Game, len(batch.Draws), err)
						continue
					}

					atomic.AddInt64(&accepted, int64(ack.Accepted))
					atomic.AddInt64(&duplicate, int64(ack.Duplicates))
					atomic.AddInt64(&rejected, int64(ack.Rejected))

					if config.Verbose {
						log.Printf("batch %d/%d (%s): accepted=%d duplicates=%d rejected=%d",
							done, len(batches), batch.Game, ack.Accepted, ack.Duplicates, ack.Rejected)
					}
				}
			}
		}()
	}

	// Send batches to workers
	go func() {
		defer close(batchChan)
		for _, batch := range batches {
			select {
			case <-ctx.Done():
				return
			case batchChan <- batch:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.BatchesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.BatchesFailed = int(atomic.LoadInt64(&failed))
	stats.DrawsAccepted = int(atomic.LoadInt64(&accepted))
	stats.DrawsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.DrawsRejected = int(atomic.LoadInt64(&rejected))

	log.Printf(`Draw submission completed:
   Accepted: %d
   Duplicate: %d
   Rejected: %d
   Failed batches: %d
`, stats.DrawsAccepted, stats.DrawsDuplicate, stats.DrawsRejected, stats.BatchesFailed)

	if stats.BatchesFailed == stats.BatchesSubmitted && stats.BatchesSubmitted > 0 {
		return fmt.Errorf("all %d batches failed", stats.BatchesFailed)
	}
	return nil
}

// submitSingleBatch submits one batch and parses the acknowledgement.
func submitSingleBatch(ctx context.Context, client *HTTPClient, url string, batch Batch) (*AckResponse, error) {
	resp, err := client.Post(ctx, url, batch)
	if err != nil {
		return nil, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != StatusAccepted {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var ack AckResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("failed to parse acknowledgement: %w", err)
	}
	return &ack, nil
}
