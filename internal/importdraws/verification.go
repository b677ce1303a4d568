package importdraws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
)

// statisticsResponse holds the fields of the statistics payload the
// verifier inspects.
type statisticsResponse struct {
	Type                        string         `json:"type"`
	TotalDraws                  int            `json:"totalDraws"`
	Frequency                   map[string]int `json:"frequency"`
	OptimizedByPosition         []int          `json:"optimizedByPosition"`
	OptimizedByGeneralFrequency []int          `json:"optimizedByGeneralFrequency"`
}

// diagnosticsResponse mirrors the diagnostics payload.
type diagnosticsResponse struct {
	Checks []struct {
		Name   string `json:"name"`
		Passed bool   `json:"passed"`
		Detail string `json:"detail"`
	} `json:"checks"`
}

// verifyStatistics checks each imported game's statistics and diagnostics.
func verifyStatistics(ctx context.Context, config *Config, byGame map[string][]Draw, stats *Stats) error {
	log.Println("Verifying statistics...")

	client := newHTTPClient(config.Timeout)

	games := make([]string, 0, len(byGame))
	for game := range byGame {
		games = append(games, game)
	}
	sort.Strings(games)

	for _, game := range games {
		if err := verifyGame(ctx, client, config, game, len(byGame[game])); err != nil {
			return fmt.Errorf("game %s: %w", game, err)
		}
		stats.GamesVerified++
	}

	log.Println("Statistics verification completed")
	return nil
}

// verifyGame fetches one game's statistics and diagnostics and checks they
// reflect the imported draws.
func verifyGame(ctx context.Context, client *HTTPClient, config *Config, game string, imported int) error {
	result, err := fetchStatistics(ctx, client, config.BaseURL, game)
	if err != nil {
		return err
	}

	if result.Type != game {
		return fmt.Errorf("statistics type %q does not match game", result.Type)
	}
	if result.TotalDraws < 1 {
		return fmt.Errorf("statistics report no tabulated draws after importing %d", imported)
	}
	if len(result.OptimizedByPosition) != 6 || len(result.OptimizedByGeneralFrequency) != 6 {
		return fmt.Errorf("optimized combinations incomplete")
	}

	log.Printf("%s: totalDraws=%d distinctNumbers=%d optimizedByPosition=%v",
		game, result.TotalDraws, len(result.Frequency), result.OptimizedByPosition)

	report, err := fetchDiagnostics(ctx, client, config.BaseURL, game)
	if err != nil {
		return err
	}

	failed := 0
	for _, check := range report.Checks {
		if !check.Passed {
			failed++
			log.Printf("%s: diagnostic %s failed: %s", game, check.Name, check.Detail)
		} else if config.Verbose {
			log.Printf("%s: diagnostic %s passed", game, check.Name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d diagnostic checks failed", failed)
	}

	return nil
}

func fetchStatistics(ctx context.Context, client *HTTPClient, baseURL, game string) (*statisticsResponse, error) {
	resp, err := client.Get(ctx, baseURL+"/statistics/"+game)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statistics: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read statistics: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("statistics request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result statisticsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse statistics: %w", err)
	}
	return &result, nil
}

func fetchDiagnostics(ctx context.Context, client *HTTPClient, baseURL, game string) (*diagnosticsResponse, error) {
	resp, err := client.Get(ctx, baseURL+"/diagnostics/"+game)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch diagnostics: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagnostics: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("diagnostics request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var report diagnosticsResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to parse diagnostics: %w", err)
	}
	return &report, nil
}
