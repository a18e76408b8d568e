package cluster

import (
	"log/slog"
	"math"
	"sort"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/taxonomy"
	"gonum.org/v1/gonum/mat"
)

// Auto-selected cluster counts stay within this band.
const (
	minAutoClusters = 3
	maxAutoClusters = 8
)

// placeholderCentroid is the centroid value before layout runs, and the
// final value for clusters without members.
var placeholderCentroid = core.Coordinate{X: 0.5, Y: 0.5}

// Config holds the per-dimension distance weights and the target cluster
// count.
type Config struct {
	SemanticWeight    float64 `yaml:"semantic_weight"`
	IntentWeight      float64 `yaml:"intent_weight"`
	PerspectiveWeight float64 `yaml:"perspective_weight"`
	EntityWeight      float64 `yaml:"entity_weight"`

	// Count is the explicit cluster count; 0 selects automatically as
	// round(n/10) clamped to [3,8] and capped at n.
	Count int `yaml:"count"`
}

// DefaultConfig returns the standard clustering parameters.
func DefaultConfig() Config {
	return Config{
		SemanticWeight:    0.5,
		IntentWeight:      0.2,
		PerspectiveWeight: 0.15,
		EntityWeight:      0.15,
		Count:             0,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.SemanticWeight < 0 || c.IntentWeight < 0 || c.PerspectiveWeight < 0 || c.EntityWeight < 0 {
		return ErrNegativeWeight
	}
	if c.SemanticWeight+c.IntentWeight+c.PerspectiveWeight+c.EntityWeight <= 0 {
		return ErrZeroWeights
	}
	if c.Count < 0 {
		return ErrInvalidCount
	}
	return nil
}

// Similarity returns the lexical similarity between two nodes by index.
type Similarity func(i, j int) float64

// Engine computes cluster assignments and per-cluster metadata.
type Engine struct {
	pack   *taxonomy.Pack
	cfg    Config
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a cluster engine.
func NewEngine(pack *taxonomy.Pack, cfg Config, opts ...Option) (*Engine, error) {
	if pack == nil {
		return nil, ErrPackRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		pack:   pack,
		cfg:    cfg,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Cluster assigns every node to exactly one cluster and returns the cluster
// records with centroid placeholders. Node ClusterId fields are set in
// place.
func (e *Engine) Cluster(nodes []*core.Node, similarity Similarity) []*core.Cluster {
	n := len(nodes)
	if n == 0 {
		return []*core.Cluster{}
	}

	k := e.clusterCount(n)
	distances := e.distanceMatrix(nodes, similarity)
	groups := agglomerate(n, k, distances)

	// Letter labels follow sorted smallest-member index, not merge order.
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})

	clusters := make([]*core.Cluster, len(groups))
	for gi, members := range groups {
		id := string(rune('A' + gi))
		cluster := &core.Cluster{
			Id:       id,
			Centroid: placeholderCentroid,
		}
		for _, index := range members {
			nodes[index].ClusterId = id
			cluster.NodeIds = append(cluster.NodeIds, nodes[index].Id)
		}
		e.fillMetadata(cluster, members, nodes)
		clusters[gi] = cluster
	}

	e.logger.Debug("clustering complete", "nodes", n, "clusters", len(clusters), "target", k)

	return clusters
}

// clusterCount resolves the explicit or automatic cluster count, capped at
// the node count so degenerate inputs still cluster.
func (e *Engine) clusterCount(n int) int {
	k := e.cfg.Count
	if k == 0 {
		k = int(math.Round(float64(n) / 10))
		if k < minAutoClusters {
			k = minAutoClusters
		}
		if k > maxAutoClusters {
			k = maxAutoClusters
		}
	}
	if k > n {
		k = n
	}
	return k
}

// distanceMatrix builds the symmetric multi-criteria distance matrix,
// normalized by its maximum entry so every distance lies in [0,1].
func (e *Engine) distanceMatrix(nodes []*core.Node, similarity Similarity) *mat.SymDense {
	n := len(nodes)
	distances := mat.NewSymDense(n, nil)

	entitySets := make([]map[string]bool, n)
	for i, node := range nodes {
		entitySets[i] = e.pack.EntitySet(node.Phrase)
	}

	var max float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := e.cfg.SemanticWeight*(1-core.Clamp01(similarity(i, j))) +
				e.cfg.IntentWeight*e.pack.IntentDistanceBetween(nodes[i].Intent, nodes[j].Intent) +
				e.cfg.PerspectiveWeight*e.pack.PerspectiveDistanceBetween(nodes[i].Perspective, nodes[j].Perspective) +
				e.cfg.EntityWeight*(1-entityJaccard(entitySets[i], entitySets[j]))
			distances.SetSym(i, j, d)
			if d > max {
				max = d
			}
		}
	}

	if max > 0 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				distances.SetSym(i, j, distances.At(i, j)/max)
			}
		}
	}

	return distances
}

// fillMetadata computes dominant labels and hub entities for a cluster.
// Ties break toward the label or entity encountered first in member order.
func (e *Engine) fillMetadata(cluster *core.Cluster, members []int, nodes []*core.Node) {
	intentCounts := make(map[core.Intent]int)
	perspectiveCounts := make(map[core.Perspective]int)
	var intentOrder []core.Intent
	var perspectiveOrder []core.Perspective

	entityCounts := make(map[string]int)
	var entityOrder []string

	for _, index := range members {
		node := nodes[index]
		if intentCounts[node.Intent] == 0 {
			intentOrder = append(intentOrder, node.Intent)
		}
		intentCounts[node.Intent]++
		if perspectiveCounts[node.Perspective] == 0 {
			perspectiveOrder = append(perspectiveOrder, node.Perspective)
		}
		perspectiveCounts[node.Perspective]++

		for _, entity := range e.pack.Extract(node.Phrase) {
			if !e.pack.ContentBearing(entity.Type) {
				continue
			}
			if entityCounts[entity.Canonical] == 0 {
				entityOrder = append(entityOrder, entity.Canonical)
			}
			entityCounts[entity.Canonical]++
		}
	}

	for _, intent := range intentOrder {
		if intentCounts[intent] > intentCounts[cluster.DominantIntent] {
			cluster.DominantIntent = intent
		}
	}
	for _, perspective := range perspectiveOrder {
		if perspectiveCounts[perspective] > perspectiveCounts[cluster.DominantPerspective] {
			cluster.DominantPerspective = perspective
		}
	}

	// Stable sort by descending count keeps first-encountered order among
	// equals.
	sort.SliceStable(entityOrder, func(i, j int) bool {
		return entityCounts[entityOrder[i]] > entityCounts[entityOrder[j]]
	})
	if len(entityOrder) > 5 {
		entityOrder = entityOrder[:5]
	}
	cluster.HubEntities = entityOrder

	if len(cluster.HubEntities) > 0 {
		cluster.Label = cluster.HubEntities[0] + " · " + string(cluster.DominantIntent)
	} else {
		cluster.Label = string(cluster.DominantIntent)
	}
}

// entityJaccard mirrors the scorer's overlap semantics: empty sets share
// nothing measurable.
func entityJaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for key := range a {
		if b[key] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
