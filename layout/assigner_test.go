package layout

import (
	"math"
	"testing"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(phrase string, intent core.Intent, perspective core.Perspective) *core.Node {
	return core.NewNode(core.ScoredCandidate{
		Candidate:   core.Candidate{Phrase: phrase, Provenance: core.ProvenanceProvider},
		Id:          core.IDFromContent(phrase),
		Intent:      intent,
		Perspective: perspective,
		Relevance:   0.5,
	})
}

func seed() *core.Seed {
	return &core.Seed{
		Id:          core.IDFromContent("billån"),
		Phrase:      "billån",
		Intent:      core.IntentTransactional,
		Perspective: core.PerspectiveSeeker,
	}
}

func newTestAssigner(t *testing.T, cfg Config) *Assigner {
	t.Helper()
	assigner, err := NewAssigner(taxonomy.Default(), cfg, WithLogger(nil))
	require.NoError(t, err)
	return assigner
}

func TestNewAssigner(t *testing.T) {
	t.Run("nil pack", func(t *testing.T) {
		_, err := NewAssigner(nil, DefaultConfig())
		assert.Equal(t, ErrPackRequired, err)
	})

	t.Run("negative jitter scale", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.JitterScale = -0.1
		_, err := NewAssigner(taxonomy.Default(), cfg)
		assert.Equal(t, ErrInvalidJitterScale, err)
	})

	t.Run("zero warn threshold", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.WarnThreshold = 0
		_, err := NewAssigner(taxonomy.Default(), cfg)
		assert.Equal(t, ErrInvalidWarnThreshold, err)
	})
}

func TestAssignSeedCoordinate(t *testing.T) {
	assigner := newTestAssigner(t, DefaultConfig())
	s := seed()

	assigner.Assign(s, nil, nil)

	// Seed position comes straight from the axis tables, never jittered.
	assert.Equal(t, 0.8, s.X)
	assert.Equal(t, 0.25, s.Y)
}

func TestAssignNodeCoordinates(t *testing.T) {
	cfg := DefaultConfig()
	assigner := newTestAssigner(t, cfg)
	nodes := []*core.Node{
		node("hur fungerar billån", core.IntentInformational, core.PerspectiveSeeker),
		node("billån ränta", core.IntentTransactional, core.PerspectiveSeeker),
	}

	assigner.Assign(seed(), nodes, nil)

	t.Run("within jitter radius of axis position", func(t *testing.T) {
		assert.InDelta(t, 0.2, nodes[0].X, cfg.JitterScale)
		assert.InDelta(t, 0.25, nodes[0].Y, cfg.JitterScale)
		assert.InDelta(t, 0.8, nodes[1].X, cfg.JitterScale)
		assert.InDelta(t, 0.25, nodes[1].Y, cfg.JitterScale)
	})

	t.Run("distinct ids land at distinct positions", func(t *testing.T) {
		// Same labels would otherwise stack both nodes on one point.
		same := []*core.Node{
			node("billån ränta", core.IntentTransactional, core.PerspectiveSeeker),
			node("billån kalkyl", core.IntentTransactional, core.PerspectiveSeeker),
		}
		assigner.Assign(seed(), same, nil)
		assert.NotEqual(t, same[0].X, same[1].X)
	})

	t.Run("zero scale disables jitter", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.JitterScale = 0
		exact := newTestAssigner(t, cfg)
		n := node("billån ränta", core.IntentTransactional, core.PerspectiveSeeker)
		exact.Assign(seed(), []*core.Node{n}, nil)
		assert.Equal(t, 0.8, n.X)
		assert.Equal(t, 0.25, n.Y)
	})

	t.Run("coordinates stay in the unit square", func(t *testing.T) {
		for _, n := range nodes {
			assert.GreaterOrEqual(t, n.X, 0.0)
			assert.LessOrEqual(t, n.X, 1.0)
			assert.GreaterOrEqual(t, n.Y, 0.0)
			assert.LessOrEqual(t, n.Y, 1.0)
		}
	})
}

func TestAssignDeterminism(t *testing.T) {
	assigner := newTestAssigner(t, DefaultConfig())

	place := func() (float64, float64) {
		n := node("bästa billån", core.IntentCommercial, core.PerspectiveAdvisor)
		assigner.Assign(seed(), []*core.Node{n}, nil)
		return n.X, n.Y
	}

	firstX, firstY := place()
	for range 5 {
		x, y := place()
		assert.Equal(t, firstX, x)
		assert.Equal(t, firstY, y)
	}
}

func TestAssignFarFromAnchorFlag(t *testing.T) {
	assigner := newTestAssigner(t, DefaultConfig())

	tests := []struct {
		name        string
		intent      core.Intent
		perspective core.Perspective
		flagged     bool
	}{
		// 0.5*0 + 0.5*0 = 0
		{"matching labels", core.IntentTransactional, core.PerspectiveSeeker, false},
		// 0.5*0.3 + 0.5*0.4 = 0.35, threshold is inclusive
		{"at threshold", core.IntentCommercial, core.PerspectiveAdvisor, true},
		// 0.5*0.6 + 0.5*0.7 = 0.65
		{"far labels", core.IntentInformational, core.PerspectiveProvider, true},
		// 0.5*0.3 + 0.5*0 = 0.15
		{"near labels", core.IntentCommercial, core.PerspectiveSeeker, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := node("x "+tc.name, tc.intent, tc.perspective)
			assigner.Assign(seed(), []*core.Node{n}, nil)
			if tc.flagged {
				assert.Contains(t, n.Flags, FlagFarFromAnchor)
			} else {
				assert.NotContains(t, n.Flags, FlagFarFromAnchor)
			}
		})
	}

	t.Run("flag not duplicated on reassignment", func(t *testing.T) {
		n := node("hur fungerar leasing", core.IntentInformational, core.PerspectiveProvider)
		assigner.Assign(seed(), []*core.Node{n}, nil)
		assigner.Assign(seed(), []*core.Node{n}, nil)
		assert.Equal(t, []string{FlagFarFromAnchor}, n.Flags)
	})
}

func TestAssignCentroids(t *testing.T) {
	assigner := newTestAssigner(t, DefaultConfig())
	nodes := []*core.Node{
		node("billån ränta", core.IntentTransactional, core.PerspectiveSeeker),
		node("billån kalkyl", core.IntentTransactional, core.PerspectiveSeeker),
		node("bästa billån", core.IntentCommercial, core.PerspectiveAdvisor),
	}
	clusters := []*core.Cluster{
		{Id: "A", NodeIds: []core.ID{nodes[0].Id, nodes[1].Id}},
		{Id: "B", NodeIds: []core.ID{nodes[2].Id}},
		{Id: "C"},
	}

	assigner.Assign(seed(), nodes, clusters)

	t.Run("mean of member coordinates", func(t *testing.T) {
		wantX := (nodes[0].X + nodes[1].X) / 2
		wantY := (nodes[0].Y + nodes[1].Y) / 2
		assert.InDelta(t, wantX, clusters[0].Centroid.X, 1e-12)
		assert.InDelta(t, wantY, clusters[0].Centroid.Y, 1e-12)
	})

	t.Run("singleton centroid matches its node", func(t *testing.T) {
		assert.Equal(t, nodes[2].X, clusters[1].Centroid.X)
		assert.Equal(t, nodes[2].Y, clusters[1].Centroid.Y)
	})

	t.Run("empty cluster defaults to center", func(t *testing.T) {
		assert.Equal(t, core.Coordinate{X: 0.5, Y: 0.5}, clusters[2].Centroid)
	})
}

func TestJitterBounds(t *testing.T) {
	const scale = 0.04
	for _, phrase := range []string{"billån", "bästa billån", "privatleasing", "ränta idag"} {
		x, y := jitter(core.IDFromContent(phrase), scale)
		assert.LessOrEqual(t, math.Abs(x), scale, phrase)
		assert.LessOrEqual(t, math.Abs(y), scale, phrase)
	}

	t.Run("zero scale is zero offset", func(t *testing.T) {
		x, y := jitter(core.IDFromContent("billån"), 0)
		assert.Zero(t, x)
		assert.Zero(t, y)
	})
}
