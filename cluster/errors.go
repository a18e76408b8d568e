package cluster

import "errors"

var (
	// ErrPackRequired is returned when a taxonomy pack is not provided.
	ErrPackRequired = errors.New("taxonomy pack required")

	// ErrNegativeWeight is returned when a distance weight is below zero.
	ErrNegativeWeight = errors.New("distance weights must not be negative")

	// ErrZeroWeights is returned when all distance weights are zero.
	ErrZeroWeights = errors.New("at least one distance weight must be positive")

	// ErrInvalidCount is returned when the cluster count is negative.
	ErrInvalidCount = errors.New("cluster count must not be negative")
)
