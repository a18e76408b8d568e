package selection

import "errors"

var (
	// ErrInvalidTarget is returned when the selection target is below 1.
	ErrInvalidTarget = errors.New("selection target must be at least 1")

	// ErrInvalidLambda is returned when lambda is outside [0,1].
	ErrInvalidLambda = errors.New("lambda must be in [0,1]")

	// ErrInvalidQuota is returned when a quota constraint is not positive.
	ErrInvalidQuota = errors.New("invalid quota constraint")

	// ErrInvalidThreshold is returned when the near-duplicate threshold is
	// outside (0,1].
	ErrInvalidThreshold = errors.New("near-duplicate threshold must be in (0,1]")
)
