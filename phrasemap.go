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

// Package phrasemap expands a seed phrase into a ranked, clustered map of
// related phrases with typed relationship edges.
//
// Engine is the top-level entry point: it owns the taxonomy pack, the
// expansion pipeline and the run store, and wires them together for
// callers that want persistence alongside expansion. Programs that only
// need the computation can use the pipeline package directly.
package phrasemap

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/pipeline"
	"github.com/poiesic/phrasemap/rescore"
	"github.com/poiesic/phrasemap/store"
	"github.com/poiesic/phrasemap/store/badger"
	"github.com/poiesic/phrasemap/taxonomy"
	"gopkg.in/yaml.v3"
)

// Engine bundles the taxonomy pack, pipeline and run store.
type Engine struct {
	backend  *badger.Backend
	runRepo  store.RunRepository
	pack     *taxonomy.Pack
	pipeline *pipeline.Pipeline
	cfg      pipeline.Config
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	cfg      pipeline.Config
	pack     *taxonomy.Pack
	logger   *slog.Logger
	poolSize int
	inMemory bool
}

// WithPipelineConfig replaces the default pipeline configuration.
func WithPipelineConfig(cfg pipeline.Config) EngineOption {
	return func(o *engineOptions) {
		o.cfg = cfg
	}
}

// WithPack replaces the built-in taxonomy pack.
func WithPack(pack *taxonomy.Pack) EngineOption {
	return func(o *engineOptions) {
		o.pack = pack
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithPoolSize sets the worker pool size for similarity computation.
func WithPoolSize(size int) EngineOption {
	return func(o *engineOptions) {
		o.poolSize = size
	}
}

// WithInMemoryStore keeps the run store in memory instead of on disk.
func WithInMemoryStore() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the run store at filePath and builds a pipeline over it.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		cfg:    pipeline.DefaultConfig(),
		pack:   taxonomy.Default(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	runRepo, err := badger.NewRunRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	pipelineOpts := []pipeline.Option{pipeline.WithLogger(options.logger)}
	if options.poolSize > 0 {
		pipelineOpts = append(pipelineOpts, pipeline.WithPoolSize(options.poolSize))
	}
	p, err := pipeline.New(options.pack, options.cfg, pipelineOpts...)
	if err != nil {
		runRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:  backend,
		runRepo:  runRepo,
		pack:     options.pack,
		pipeline: p,
		cfg:      options.cfg,
		logger:   options.logger,
	}, nil
}

// Close releases the run store.
func (e *Engine) Close() error {
	if err := e.runRepo.Close(); err != nil {
		e.logger.Error("error closing run repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Expand runs the pipeline over a seed phrase and candidate pool.
func (e *Engine) Expand(ctx context.Context, seedPhrase string, pool []core.Candidate) (*pipeline.Result, error) {
	return e.pipeline.Expand(ctx, core.Seed{Phrase: seedPhrase}, pool)
}

// SaveRun persists an expansion result with its candidate pool and
// returns the stored index record.
func (e *Engine) SaveRun(ctx context.Context, result *pipeline.Result, pool []core.Candidate) (store.RunInfo, error) {
	graph, err := json.Marshal(result.Graph)
	if err != nil {
		return store.RunInfo{}, err
	}
	report, err := json.Marshal(result.Report)
	if err != nil {
		return store.RunInfo{}, err
	}
	snapshot, err := yaml.Marshal(e.cfg)
	if err != nil {
		return store.RunInfo{}, err
	}

	run := &store.Run{
		Info:   store.NewRunInfo(result.Seed.Phrase, len(result.Nodes), len(result.Edges), len(result.Clusters)),
		Seed:   result.Seed,
		Pool:   pool,
		Graph:  graph,
		Report: report,
		Config: snapshot,
	}
	if err := e.runRepo.SaveRun(ctx, run); err != nil {
		return store.RunInfo{}, err
	}

	e.logger.Info("saved run",
		"id", run.Info.Id,
		"seed", run.Info.SeedPhrase,
		"nodes", run.Info.NodeCount)

	return run.Info, nil
}

// Rescore replays every stored run through the current pipeline.
func (e *Engine) Rescore(ctx context.Context, cfg rescore.Config, progressWriter io.Writer) (rescore.Stats, error) {
	snapshot, err := yaml.Marshal(e.cfg)
	if err != nil {
		return rescore.Stats{}, err
	}

	r, err := rescore.NewRescorer(e.runRepo, e.pipeline, cfg,
		rescore.WithLogger(e.logger),
		rescore.WithConfigSnapshot(snapshot))
	if err != nil {
		return rescore.Stats{}, err
	}
	return r.Rescore(ctx, progressWriter)
}

// Runs exposes the run repository.
func (e *Engine) Runs() store.RunRepository {
	return e.runRepo
}

// Pipeline exposes the expansion pipeline.
func (e *Engine) Pipeline() *pipeline.Pipeline {
	return e.pipeline
}

// Pack exposes the taxonomy pack.
func (e *Engine) Pack() *taxonomy.Pack {
	return e.pack
}
