package metrics

import "errors"

// ErrObserveFailed indicates a metric observation could not be recorded.
var ErrObserveFailed = errors.New("failed to observe metric")
