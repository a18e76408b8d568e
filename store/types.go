package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/phrasemap/core"
)

// RunInfo is the index record for a stored run.
type RunInfo struct {
	// Id is a random UUID assigned at save time.
	Id string

	// SeedPhrase is the normalized seed the run expanded.
	SeedPhrase string

	NodeCount    int
	EdgeCount    int
	ClusterCount int

	// CreatedAt is when the run was stored, not when it was computed; the
	// pipeline itself is clock-free.
	CreatedAt time.Time
}

// Run is a complete stored expansion.
type Run struct {
	Info RunInfo

	// Seed carries the classified, laid-out seed.
	Seed core.Seed

	// Pool is the normalized candidate pool the run consumed, kept so the
	// run can be rescored under a newer configuration.
	Pool []core.Candidate

	// Graph and Report are the artifact JSON exactly as rendered.
	Graph  json.RawMessage
	Report json.RawMessage

	// Config is a snapshot of the pipeline configuration the artifacts were
	// produced under, in YAML form. May be empty.
	Config []byte
}

// NewRunInfo builds an index record with a fresh id and the current time.
func NewRunInfo(seedPhrase string, nodes, edges, clusters int) RunInfo {
	return RunInfo{
		Id:           uuid.NewString(),
		SeedPhrase:   seedPhrase,
		NodeCount:    nodes,
		EdgeCount:    edges,
		ClusterCount: clusters,
		CreatedAt:    time.Now().UTC(),
	}
}
