// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rescore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/pipeline"
	"github.com/poiesic/phrasemap/store"
)

// Config holds batching and retry parameters for a rescoring pass.
type Config struct {
	// BatchSize is how many runs are loaded per listing slice.
	BatchSize int

	// ReportInterval reports progress every N processed runs.
	ReportInterval int

	// MaxRetries bounds save attempts per run.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns the standard rescoring parameters.
func DefaultConfig() Config {
	return Config{
		BatchSize:      16,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     200 * time.Millisecond,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return ErrInvalidBatchSize
	}
	if c.MaxRetries < 1 {
		return ErrInvalidMaxAttempts
	}
	return nil
}

// Stats summarizes a rescoring pass.
type Stats struct {
	Total    int
	Rescored int
	Failed   int
}

// Rescorer replays stored runs through a pipeline.
type Rescorer struct {
	repo     store.RunRepository
	pipeline *pipeline.Pipeline
	cfg      Config
	snapshot []byte
	logger   *slog.Logger
}

// Option configures a Rescorer.
type Option func(*Rescorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rescorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithConfigSnapshot sets the configuration snapshot written to every
// rescored run. Without it each run keeps its stored snapshot.
func WithConfigSnapshot(snapshot []byte) Option {
	return func(r *Rescorer) error {
		r.snapshot = snapshot
		return nil
	}
}

// NewRescorer creates a rescorer over a repository and pipeline.
func NewRescorer(repo store.RunRepository, p *pipeline.Pipeline, cfg Config, opts ...Option) (*Rescorer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if p == nil {
		return nil, ErrPipelineRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Rescorer{
		repo:     repo,
		pipeline: p,
		cfg:      cfg,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Rescore re-expands every stored run and overwrites its artifacts. The
// run id and creation time survive; counts and artifacts are replaced. A
// run that fails after retries is skipped and counted in Stats.Failed.
// Progress is written to progressWriter when it is non-nil.
func (r *Rescorer) Rescore(ctx context.Context, progressWriter io.Writer) (Stats, error) {
	infos, err := r.repo.ListRuns(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(infos)}
	tracker := NewProgressTracker(progressWriter, len(infos), r.cfg.ReportInterval)
	tracker.Start()
	defer tracker.Finish()

	for start := 0; start < len(infos); start += r.cfg.BatchSize {
		end := min(start+r.cfg.BatchSize, len(infos))

		for _, info := range infos[start:end] {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			if err := r.rescoreRun(ctx, info.Id); err != nil {
				r.logger.Warn("failed to rescore run", "id", info.Id, "err", err)
				stats.Failed++
			} else {
				stats.Rescored++
			}
			tracker.Increment(1)
		}
	}

	r.logger.Info("rescoring pass complete",
		"total", stats.Total,
		"rescored", stats.Rescored,
		"failed", stats.Failed)

	return stats, nil
}

// rescoreRun re-expands a single run and saves the result with retry.
func (r *Rescorer) rescoreRun(ctx context.Context, id string) error {
	run, err := r.repo.GetRun(ctx, id)
	if err != nil {
		return err
	}

	// Labels are re-derived by the pipeline; only the phrase anchors the
	// replay so pack changes take effect.
	seed := core.Seed{Phrase: run.Seed.Phrase}

	result, err := r.pipeline.Expand(ctx, seed, run.Pool)
	if err != nil {
		return err
	}

	graph, err := json.Marshal(result.Graph)
	if err != nil {
		return err
	}
	report, err := json.Marshal(result.Report)
	if err != nil {
		return err
	}

	snapshot := r.snapshot
	if snapshot == nil {
		snapshot = run.Config
	}

	updated := &store.Run{
		Info: store.RunInfo{
			Id:           run.Info.Id,
			SeedPhrase:   result.Seed.Phrase,
			NodeCount:    len(result.Nodes),
			EdgeCount:    len(result.Edges),
			ClusterCount: len(result.Clusters),
			CreatedAt:    run.Info.CreatedAt,
		},
		Seed:   result.Seed,
		Pool:   run.Pool,
		Graph:  graph,
		Report: report,
		Config: snapshot,
	}

	return RetryWithBackoff(ctx, func() error {
		return r.repo.SaveRun(ctx, updated)
	}, r.cfg.MaxRetries, r.cfg.RetryDelay)
}
