// Package repository defines the draw store interface and errors.
package repository

import "github.com/mkarami/lottostats/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithSeedDraws preloads the store with records, keyed by game slug.
// Duplicate (game, date) pairs within the seed keep the first occurrence.
func WithSeedDraws(seed map[string][]model.RawDraw) Option {
	return func(s *MemoryStore) {
		for game, draws := range seed {
			for _, draw := range draws {
				key := game + "|" + draw.Date
				if _, ok := s.seen[key]; ok {
					continue
				}
				s.seen[key] = struct{}{}
				s.draws[game] = append(s.draws[game], draw)
			}
		}
	}
}
