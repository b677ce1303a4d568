package importdraws

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/mkarami/lottostats/pkg/logger"
)

// readDrawsFile loads the input file and returns draws keyed by game.
//
// Two layouts are accepted: a map of game name to draw array, or a bare
// draw array combined with the -game flag.
func readDrawsFile(ctx context.Context, config *Config, stats *Stats) (map[string][]Draw, error) {
	data, err := os.ReadFile(config.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read draws file: %w", err)
	}

	byGame := map[string][]Draw{}
	if err := json.Unmarshal(data, &byGame); err != nil {
		// Fall back to a bare array with an explicit game.
		var draws []Draw
		if arrErr := json.Unmarshal(data, &draws); arrErr != nil {
			return nil, fmt.Errorf("failed to parse draws file: %w", err)
		}
		if config.Game == "" {
			return nil, fmt.Errorf("draws file holds a bare array; -game is required")
		}
		byGame = map[string][]Draw{config.Game: draws}
	}

	total := 0
	games := make([]string, 0, len(byGame))
	for game, draws := range byGame {
		games = append(games, game)
		total += len(draws)
	}
	sort.Strings(games)

	if total == 0 {
		return nil, fmt.Errorf("draws file contains no draws")
	}

	stats.DrawsRead = total
	logger.Get().Info(ctx, "draws file loaded",
		logger.String("file", config.File),
		logger.Int("draws", total),
		logger.Any("games", games))
	return byGame, nil
}

// splitBatches cuts one game's draw list into submission batches.
func splitBatches(game string, draws []Draw, batchSize int) []Batch {
	if batchSize <= 0 {
		batchSize = len(draws)
	}

	batches := make([]Batch, 0, (len(draws)+batchSize-1)/batchSize)
	for start := 0; start < len(draws); start += batchSize {
		end := start + batchSize
		if end > len(draws) {
			end = len(draws)
		}
		batches = append(batches, Batch{Game: game, Draws: draws[start:end]})
	}
	return batches
}
