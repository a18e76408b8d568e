package synapse

import "errors"

var (
	// ErrPackRequired is returned when a taxonomy pack is not provided.
	ErrPackRequired = errors.New("taxonomy pack required")

	// ErrInvalidEvidenceCap is returned when the evidence cap is outside (0, 1].
	ErrInvalidEvidenceCap = errors.New("evidence cap must be in (0, 1]")

	// ErrInvalidMinStrength is returned when the strength floor is outside [0, 1].
	ErrInvalidMinStrength = errors.New("minimum strength must be in [0, 1]")
)
