package queue

import "errors"

// ErrClosed indicates the queue was closed while an operation was pending.
var ErrClosed = errors.New("queue closed")
