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

package synapse

import (
	"log/slog"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/taxonomy"
)

// Config holds graph-construction parameters.
type Config struct {
	// EvidenceCap bounds edge and evidence confidence.
	EvidenceCap float64 `yaml:"evidence_cap"`

	// MinStrength is the floor an intra-cluster edge must clear to be
	// emitted. Seed edges are always emitted.
	MinStrength float64 `yaml:"min_strength"`
}

// DefaultConfig returns the standard graph parameters.
func DefaultConfig() Config {
	return Config{
		EvidenceCap: 0.90,
		MinStrength: 0.25,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.EvidenceCap <= 0 || c.EvidenceCap > 1 {
		return ErrInvalidEvidenceCap
	}
	if c.MinStrength < 0 || c.MinStrength > 1 {
		return ErrInvalidMinStrength
	}
	return nil
}

// Builder constructs the relationship graph for one pipeline run.
type Builder struct {
	pack   *taxonomy.Pack
	cfg    Config
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a relationship graph builder.
func NewBuilder(pack *taxonomy.Pack, cfg Config, opts ...Option) (*Builder, error) {
	if pack == nil {
		return nil, ErrPackRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		pack:   pack,
		cfg:    cfg,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build returns the full edge list: one seed edge per node followed by the
// deduplicated intra-cluster edges, both in node input order.
func (b *Builder) Build(seed *core.Seed, nodes []*core.Node) []core.Synapse {
	edges := make([]core.Synapse, 0, 2*len(nodes))

	for _, node := range nodes {
		edges = append(edges, b.seedEdge(seed, node))
	}
	edges = append(edges, b.clusterEdges(nodes)...)

	b.logger.Debug("graph built", "nodes", len(nodes), "edges", len(edges))
	return edges
}

// SeedEdge builds the edge between the seed and a single node. The pipeline
// emits one per node; the report artifact reuses it as the node's card.
func (b *Builder) SeedEdge(seed *core.Seed, node *core.Node) core.Synapse {
	return b.seedEdge(seed, node)
}

func (b *Builder) seedEdge(seed *core.Seed, node *core.Node) core.Synapse {
	p := profile{
		phrases:          []string{node.Phrase},
		lexical:          node.Features[core.FeatureLexicalSimilarity],
		entityOverlap:    node.Features[core.FeatureEntityOverlap],
		externalOverlap:  node.Features[core.FeatureExternalOverlap],
		fromIntent:       seed.Intent,
		toIntent:         node.Intent,
		fromPerspective:  seed.Perspective,
		toPerspective:    node.Perspective,
		fromPhrase:       seed.Phrase,
		toPhrase:         node.Phrase,
		targetIntent:     node.Intent,
		sharedEntities:   b.sharedEntities(seed.Phrase, node.Phrase),
		confidenceSource: node.Confidence,
	}

	return b.edge(seed.Id, node.Id, core.Clamp01(node.Relevance), p)
}

// clusterEdges links each node to its best-grounded same-cluster neighbor.
func (b *Builder) clusterEdges(nodes []*core.Node) []core.Synapse {
	var edges []core.Synapse
	seen := make(map[pairKey]bool)

	for i, node := range nodes {
		j := b.bestNeighbor(nodes, i)
		if j < 0 {
			continue
		}
		neighbor := nodes[j]

		strength := core.Clamp01(0.5 * (node.Relevance + neighbor.Relevance))
		if strength < b.cfg.MinStrength {
			continue
		}

		key := newPairKey(node.Id, neighbor.Id)
		if seen[key] {
			continue
		}
		seen[key] = true

		edges = append(edges, b.pairEdge(node, neighbor, strength))
	}

	return edges
}

// bestNeighbor returns the index of the same-cluster node with the highest
// mutual grounding with nodes[i], or -1 when the cluster has no other
// member. Ties keep the earliest candidate in input order.
func (b *Builder) bestNeighbor(nodes []*core.Node, i int) int {
	node := nodes[i]
	ownGrounding := node.Features[core.FeatureLexicalSimilarity]

	best := -1
	var bestGrounding float64
	for j, other := range nodes {
		if j == i || other.ClusterId != node.ClusterId {
			continue
		}
		grounding := min(ownGrounding, other.Features[core.FeatureLexicalSimilarity])
		if best < 0 || grounding > bestGrounding {
			best = j
			bestGrounding = grounding
		}
	}
	return best
}

func (b *Builder) pairEdge(a, n *core.Node, strength float64) core.Synapse {
	p := profile{
		phrases:          []string{a.Phrase, n.Phrase},
		lexical:          min(a.Features[core.FeatureLexicalSimilarity], n.Features[core.FeatureLexicalSimilarity]),
		entityOverlap:    b.entityJaccard(a.Phrase, n.Phrase),
		externalOverlap:  min(a.Features[core.FeatureExternalOverlap], n.Features[core.FeatureExternalOverlap]),
		fromIntent:       a.Intent,
		toIntent:         n.Intent,
		fromPerspective:  a.Perspective,
		toPerspective:    n.Perspective,
		fromPhrase:       a.Phrase,
		toPhrase:         n.Phrase,
		targetIntent:     n.Intent,
		sharedEntities:   b.sharedEntities(a.Phrase, n.Phrase),
		confidenceSource: min(a.Confidence, n.Confidence),
	}

	return b.edge(a.Id, n.Id, strength, p)
}

// edge assembles a complete synapse from a classification profile.
func (b *Builder) edge(from, to core.ID, strength float64, p profile) core.Synapse {
	types := b.classify(p)
	confidence := core.Clamp01(min(b.cfg.EvidenceCap, p.confidenceSource))

	return core.Synapse{
		From:     from,
		To:       to,
		Strength: strength,
		Types:    types,
		Card: core.SynapseCard{
			Direction:        "bidirectional",
			IntentShift:      shift(string(p.fromIntent), string(p.toIntent)),
			PerspectiveShift: shift(string(p.fromPerspective), string(p.toPerspective)),
			Confidence:       confidence,
			BridgeStatement:  b.bridgeStatement(p),
			Evidence:         b.evidence(p, confidence),
		},
	}
}

// evidence builds the scored justification list. Lexical and entity entries
// are always present; the SERP entry only when the signal exists. Entry
// confidence never exceeds the evidence cap or the edge's own confidence.
func (b *Builder) evidence(p profile, edgeConfidence float64) []core.Evidence {
	entryConfidence := core.Clamp01(min(b.cfg.EvidenceCap, edgeConfidence))

	entries := []core.Evidence{
		{
			Kind:       core.FeatureLexicalSimilarity,
			Value:      core.Clamp01(p.lexical),
			Confidence: entryConfidence,
			Detail:     "term-vector cosine similarity",
		},
		{
			Kind:       core.FeatureEntityOverlap,
			Value:      core.Clamp01(p.entityOverlap),
			Confidence: entryConfidence,
			Detail:     entityDetail(p.sharedEntities),
		},
	}

	if p.externalOverlap > 0 {
		entries = append(entries, core.Evidence{
			Kind:       core.FeatureExternalOverlap,
			Value:      core.Clamp01(p.externalOverlap),
			Confidence: entryConfidence,
			Detail:     "shared results in external snapshot",
		})
	}

	return entries
}

// sharedEntities returns the canonical entities both phrases mention, in
// pack rule order.
func (b *Builder) sharedEntities(a, c string) []string {
	other := b.pack.EntitySet(c)
	var shared []string
	for _, entity := range b.pack.Extract(a) {
		if other[entity.Canonical] {
			shared = append(shared, entity.Canonical)
		}
	}
	return shared
}

// entityJaccard is the Jaccard similarity of the two phrases' entity sets.
func (b *Builder) entityJaccard(a, c string) float64 {
	setA := b.pack.EntitySet(a)
	setC := b.pack.EntitySet(c)
	if len(setA) == 0 && len(setC) == 0 {
		return 0
	}

	intersection := 0
	for entity := range setA {
		if setC[entity] {
			intersection++
		}
	}
	union := len(setA) + len(setC) - intersection
	return float64(intersection) / float64(union)
}

// shift renders "from→to" for differing labels, empty otherwise.
func shift(from, to string) string {
	if from == to {
		return ""
	}
	return from + "→" + to
}

type pairKey struct {
	lo, hi core.ID
}

func newPairKey(a, b core.ID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}
