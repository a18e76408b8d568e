package layout

import (
	"log/slog"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/taxonomy"
)

// FlagFarFromAnchor marks nodes whose labels place them anomalously far
// from the seed.
const FlagFarFromAnchor = "far-from-anchor"

// Config holds layout parameters.
type Config struct {
	// JitterScale is the maximum jitter magnitude per axis.
	JitterScale float64 `yaml:"jitter_scale"`

	// WarnThreshold is the combined label distance from the seed at which
	// a node is flagged as far from the anchor.
	WarnThreshold float64 `yaml:"warn_threshold"`
}

// DefaultConfig returns the standard layout parameters.
func DefaultConfig() Config {
	return Config{
		JitterScale:   0.04,
		WarnThreshold: 0.35,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.JitterScale < 0 || c.JitterScale > 0.5 {
		return ErrInvalidJitterScale
	}
	if c.WarnThreshold <= 0 || c.WarnThreshold > 1 {
		return ErrInvalidWarnThreshold
	}
	return nil
}

// Assigner computes seed and node coordinates and cluster centroids.
type Assigner struct {
	pack   *taxonomy.Pack
	cfg    Config
	logger *slog.Logger
}

// Option configures an Assigner.
type Option func(*Assigner) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assigner) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssigner creates a layout assigner.
func NewAssigner(pack *taxonomy.Pack, cfg Config, opts ...Option) (*Assigner, error) {
	if pack == nil {
		return nil, ErrPackRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Assigner{
		pack:   pack,
		cfg:    cfg,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Assign sets coordinates on the seed and all nodes, flags far-from-anchor
// nodes, and fills cluster centroids. Mutations happen in place; nothing is
// added or removed.
func (a *Assigner) Assign(seed *core.Seed, nodes []*core.Node, clusters []*core.Cluster) {
	seed.X = a.pack.AxisX(seed.Intent)
	seed.Y = a.pack.AxisY(seed.Perspective)

	flagged := 0
	for _, node := range nodes {
		jx, jy := jitter(node.Id, a.cfg.JitterScale)
		node.X = core.Clamp01(a.pack.AxisX(node.Intent) + jx)
		node.Y = core.Clamp01(a.pack.AxisY(node.Perspective) + jy)

		anchorDistance := 0.5*a.pack.IntentDistanceBetween(seed.Intent, node.Intent) +
			0.5*a.pack.PerspectiveDistanceBetween(seed.Perspective, node.Perspective)
		if anchorDistance >= a.cfg.WarnThreshold {
			node.AddFlag(FlagFarFromAnchor)
			flagged++
		}
	}

	byID := make(map[core.ID]*core.Node, len(nodes))
	for _, node := range nodes {
		byID[node.Id] = node
	}

	for _, cluster := range clusters {
		cluster.Centroid = centroid(cluster.NodeIds, byID)
	}

	a.logger.Debug("layout complete", "nodes", len(nodes), "flagged", flagged)
}

// centroid is the arithmetic mean of member coordinates, or the center of
// the unit square for clusters without members.
func centroid(nodeIDs []core.ID, byID map[core.ID]*core.Node) core.Coordinate {
	var sumX, sumY float64
	count := 0
	for _, id := range nodeIDs {
		if node, ok := byID[id]; ok {
			sumX += node.X
			sumY += node.Y
			count++
		}
	}
	if count == 0 {
		return core.Coordinate{X: 0.5, Y: 0.5}
	}
	return core.Coordinate{X: sumX / float64(count), Y: sumY / float64(count)}
}
