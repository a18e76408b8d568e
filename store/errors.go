package store

import "errors"

var (
	// ErrNotFound is returned when no run with the requested id exists.
	ErrNotFound = errors.New("run not found")

	// ErrMissingId is returned when a run is saved without an id.
	ErrMissingId = errors.New("run id is required")

	// ErrCorruptRecord is returned when a stored record cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt stored record")
)
