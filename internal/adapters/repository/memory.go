// Package repository defines the draw store interface and errors.
package repository

import (
	"context"
	"sync"

	"github.com/mkarami/lottostats/internal/domain/model"
	"github.com/mkarami/lottostats/pkg/metrics"
)

// MemoryStore is an in-memory Store implementation. Records keep their
// insertion order per game; identity is the (game, date) pair.
type MemoryStore struct {
	mu    sync.RWMutex
	draws map[string][]model.RawDraw
	seen  map[string]struct{}
}

// NewMemoryStore creates an empty in-memory draw store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		draws: make(map[string][]model.RawDraw),
		seen:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append stores a draw record unless one with the same game and date exists.
func (s *MemoryStore) Append(ctx context.Context, game string, draw model.RawDraw) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := game + "|" + draw.Date
	if _, ok := s.seen[key]; ok {
		return false, nil
	}

	s.seen[key] = struct{}{}
	s.draws[game] = append(s.draws[game], draw)
	metrics.UpdateStoredDraws(game, len(s.draws[game]))

	return true, nil
}

// List returns all stored records for a game in insertion order.
func (s *MemoryStore) List(ctx context.Context, game string) ([]model.RawDraw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.draws[game]
	out := make([]model.RawDraw, len(stored))
	copy(out, stored)
	return out, nil
}

// Latest returns the record with the highest draw date. ISO-8601 dates order
// lexicographically, so a plain string comparison suffices.
func (s *MemoryStore) Latest(ctx context.Context, game string) (model.RawDraw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.draws[game]
	if len(stored) == 0 {
		return model.RawDraw{}, ErrNoDraws
	}

	latest := stored[0]
	for _, d := range stored[1:] {
		if d.Date > latest.Date {
			latest = d
		}
	}
	return latest, nil
}

// Count returns the number of records stored for a game.
func (s *MemoryStore) Count(ctx context.Context, game string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.draws[game]), nil
}
