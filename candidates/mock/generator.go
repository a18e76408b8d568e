// Package mock provides a test double for the candidate generator.
package mock

import (
	"context"
	"sync"

	"github.com/poiesic/phrasemap/candidates"
	"github.com/poiesic/phrasemap/core"
)

// Generator is a test double for candidates.Generator.
// It allows custom behavior injection via function fields.
type Generator struct {
	// GenerateFunc is called by Generate if set. If nil, the fixed Pool is
	// returned.
	GenerateFunc func(ctx context.Context, seed core.Seed) ([]core.Candidate, error)

	// Pool is returned by the default behavior.
	Pool []core.Candidate

	mu        sync.Mutex
	callCount int
}

var _ candidates.Generator = (*Generator)(nil)

// NewGenerator creates a mock generator returning the given pool.
func NewGenerator(pool []core.Candidate) *Generator {
	return &Generator{Pool: pool}
}

// Generate returns the configured pool or delegates to GenerateFunc.
func (g *Generator) Generate(ctx context.Context, seed core.Seed) ([]core.Candidate, error) {
	g.mu.Lock()
	g.callCount++
	g.mu.Unlock()

	if g.GenerateFunc != nil {
		return g.GenerateFunc(ctx, seed)
	}
	return g.Pool, nil
}

// CallCount returns the number of times Generate was called.
func (g *Generator) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.callCount
}

// Reset clears the call count and custom function.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.callCount = 0
	g.GenerateFunc = nil
}
