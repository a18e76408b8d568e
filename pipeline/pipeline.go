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

package pipeline

import (
	"context"
	"log/slog"

	"github.com/poiesic/phrasemap/artifact"
	"github.com/poiesic/phrasemap/candidates"
	"github.com/poiesic/phrasemap/cluster"
	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/layout"
	"github.com/poiesic/phrasemap/lexical"
	"github.com/poiesic/phrasemap/scoring"
	"github.com/poiesic/phrasemap/selection"
	"github.com/poiesic/phrasemap/synapse"
	"github.com/poiesic/phrasemap/taxonomy"
)

// Result is the complete output of one pipeline run.
type Result struct {
	Seed     core.Seed
	Nodes    []*core.Node
	Clusters []*core.Cluster
	Edges    []core.Synapse
	Graph    artifact.Graph
	Report   artifact.Report
}

// Pipeline wires the expansion stages together. It is stateless across
// runs and safe for concurrent use.
type Pipeline struct {
	pack     *taxonomy.Pack
	scorer   *scoring.Scorer
	selector *selection.Selector
	engine   *cluster.Engine
	assigner *layout.Assigner
	builder  *synapse.Builder
	poolSize int
	logger   *slog.Logger
	monitor  Monitor
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker count for pairwise similarity computation.
// 0 or 1 keeps the computation sequential.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 0 {
			return ErrInvalidPoolSize
		}
		p.poolSize = size
		return nil
	}
}

// WithMonitor attaches a stage observer. Default is a no-op.
func WithMonitor(monitor Monitor) Option {
	return func(p *Pipeline) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// New creates a pipeline from a taxonomy pack and stage configuration.
// Configuration errors surface here, before any run starts.
func New(pack *taxonomy.Pack, cfg Config, opts ...Option) (*Pipeline, error) {
	if pack == nil {
		return nil, ErrPackRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		pack:    pack,
		logger:  slog.Default(),
		monitor: &noopMonitor{},
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	var err error
	if p.scorer, err = scoring.NewScorer(pack, cfg.Scoring, scoring.WithLogger(p.logger)); err != nil {
		return nil, err
	}
	if p.selector, err = selection.NewSelector(cfg.Selection, selection.WithLogger(p.logger)); err != nil {
		return nil, err
	}
	if p.engine, err = cluster.NewEngine(pack, cfg.Cluster, cluster.WithLogger(p.logger)); err != nil {
		return nil, err
	}
	if p.assigner, err = layout.NewAssigner(pack, cfg.Layout, layout.WithLogger(p.logger)); err != nil {
		return nil, err
	}
	if p.builder, err = synapse.NewBuilder(pack, cfg.Synapse, synapse.WithLogger(p.logger)); err != nil {
		return nil, err
	}

	return p, nil
}

// Expand runs the full pipeline for one seed over a raw candidate pool.
// The pool is normalized and deduplicated first; an empty pool yields a
// valid result with no nodes. The context is consulted between stages only;
// no stage blocks on I/O.
func (p *Pipeline) Expand(ctx context.Context, seed core.Seed, pool []core.Candidate) (*Result, error) {
	seed.Phrase = candidates.Normalize(seed.Phrase)
	if err := core.ValidateSeed(&seed); err != nil {
		return nil, err
	}

	seed.Id = core.IDFromContent(seed.Phrase)
	if seed.Intent == "" || seed.Perspective == "" {
		intent, perspective := p.pack.Classify(seed.Phrase)
		if seed.Intent == "" {
			seed.Intent = intent
		}
		if seed.Perspective == "" {
			seed.Perspective = perspective
		}
	}
	p.monitor.Start(seed)

	pool = candidates.Prepare(seed.Phrase, pool)

	scored := p.scorer.Score(seed, pool)
	p.monitor.AfterScoring(scored.Scored)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	selected := p.selector.Select(scored.Scored, scored.CandidateSimilarity)
	p.monitor.AfterSelection(selected)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nodes := make([]*core.Node, len(selected))
	phrases := make([]string, len(selected))
	for i, sc := range selected {
		nodes[i] = core.NewNode(sc)
		phrases[i] = sc.Phrase
	}

	// Node-only matrix: the vocabulary differs from the scoring matrix,
	// which also covered the seed and the unselected candidates.
	similarity := p.similarityTable(lexical.NewMatrix(phrases), len(nodes))

	clusters := p.engine.Cluster(nodes, similarity)
	p.monitor.AfterClustering(clusters)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.assigner.Assign(&seed, nodes, clusters)
	p.monitor.AfterLayout(nodes)

	edges := p.builder.Build(&seed, nodes)
	p.monitor.Finish(edges)

	p.logger.Info("expansion complete",
		"seed", seed.Phrase,
		"pool", len(pool),
		"nodes", len(nodes),
		"clusters", len(clusters),
		"edges", len(edges))

	return &Result{
		Seed:     seed,
		Nodes:    nodes,
		Clusters: clusters,
		Edges:    edges,
		Graph:    artifact.NewGraph(&seed, nodes, edges, clusters),
		Report:   artifact.NewReport(&seed, nodes, edges),
	}, nil
}
