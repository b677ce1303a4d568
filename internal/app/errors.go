package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnknownGame  = errors.New("unknown game")
	ErrNotComputed  = errors.New("statistics not computed yet")
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("backpressure")
)
