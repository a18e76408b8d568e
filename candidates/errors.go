package candidates

import "errors"

var (
	// ErrMissingHost is returned when the service host URL is empty.
	ErrMissingHost = errors.New("suggestion service host is required")

	// ErrMissingModel is returned when the model identifier is empty.
	ErrMissingModel = errors.New("suggestion model is required")

	// ErrInvalidMaxCandidates is returned when the candidate bound is not positive.
	ErrInvalidMaxCandidates = errors.New("max candidates must be positive")
)
