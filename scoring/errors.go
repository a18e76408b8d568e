package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrPackRequired is returned when a taxonomy pack is not provided.
	ErrPackRequired = errors.New("taxonomy pack required")

	// ErrNoWeights is returned when the weight map is empty.
	ErrNoWeights = errors.New("scoring weights required")
)

// NegativeWeightError reports a feature weight below zero.
type NegativeWeightError struct {
	Feature string
	Weight  float64
}

func (e *NegativeWeightError) Error() string {
	return fmt.Sprintf("scoring weight for %s is %v, must not be negative", e.Feature, e.Weight)
}
