package repository

import "errors"

// Sentinel kinds for draw store errors.
var (
	ErrNoDraws = errors.New("no draws stored for game")
)
