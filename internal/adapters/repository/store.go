// Package repository defines the draw store interface and errors.
package repository

import (
	"context"

	"github.com/mkarami/lottostats/internal/domain/model"
)

// Store provides read/write access to historical draw records, grouped by
// game slug.
type Store interface {
	// Append stores a draw record for a game. A record is identified by its
	// game and date; appending an already-stored record is a no-op and
	// returns false.
	Append(ctx context.Context, game string, draw model.RawDraw) (bool, error)

	// List returns all stored records for a game in insertion order.
	List(ctx context.Context, game string) ([]model.RawDraw, error)

	// Latest returns the most recent record for a game by draw date.
	// Returns ErrNoDraws when the game has no records.
	Latest(ctx context.Context, game string) (model.RawDraw, error)

	// Count returns the number of records stored for a game.
	Count(ctx context.Context, game string) (int, error)
}
