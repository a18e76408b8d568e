package candidates

import (
	"context"

	"github.com/poiesic/phrasemap/core"
)

// Generator produces candidate phrases for a seed.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate returns raw candidates for the seed. Phrases need not be
	// normalized; callers run the result through Prepare. An empty result
	// is valid, not an error.
	Generate(ctx context.Context, seed core.Seed) ([]core.Candidate, error)
}
