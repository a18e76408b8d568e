package pipeline

import "errors"

var (
	// ErrPackRequired is returned when a taxonomy pack is not provided.
	ErrPackRequired = errors.New("taxonomy pack required")

	// ErrConfigUnreadable is returned when the config file cannot be read or parsed.
	ErrConfigUnreadable = errors.New("unable to read pipeline config")

	// ErrInvalidPoolSize is returned when the worker pool size is negative.
	ErrInvalidPoolSize = errors.New("pool size must not be negative")
)
