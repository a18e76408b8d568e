package cluster

import (
	"testing"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/lexical"
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

func testNodes() []*core.Node {
	return []*core.Node{
		node("billån ränta", core.IntentTransactional, core.PerspectiveSeeker),
		node("billån ränta idag", core.IntentTransactional, core.PerspectiveSeeker),
		node("bästa billån", core.IntentCommercial, core.PerspectiveAdvisor),
		node("bästa billån 2024", core.IntentCommercial, core.PerspectiveAdvisor),
		node("hur fungerar privatleasing", core.IntentInformational, core.PerspectiveSeeker),
		node("privatleasing guide", core.IntentInformational, core.PerspectiveSeeker),
	}
}

func similarityFor(nodes []*core.Node) Similarity {
	phrases := make([]string, len(nodes))
	for i, n := range nodes {
		phrases[i] = n.Phrase
	}
	matrix := lexical.NewMatrix(phrases)
	return matrix.Cosine
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	engine, err := NewEngine(taxonomy.Default(), cfg, WithLogger(nil))
	require.NoError(t, err)
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("nil pack", func(t *testing.T) {
		_, err := NewEngine(nil, DefaultConfig())
		assert.Equal(t, ErrPackRequired, err)
	})

	t.Run("negative weight", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.EntityWeight = -1
		_, err := NewEngine(taxonomy.Default(), cfg)
		assert.ErrorIs(t, err, ErrNegativeWeight)
	})

	t.Run("all zero weights", func(t *testing.T) {
		_, err := NewEngine(taxonomy.Default(), Config{})
		assert.ErrorIs(t, err, ErrZeroWeights)
	})
}

func TestClusterMembership(t *testing.T) {
	nodes := testNodes()
	engine := newTestEngine(t, DefaultConfig())

	clusters := engine.Cluster(nodes, similarityFor(nodes))
	require.NotEmpty(t, clusters)

	t.Run("every node in exactly one cluster", func(t *testing.T) {
		for _, n := range nodes {
			occurrences := 0
			for _, c := range clusters {
				for _, id := range c.NodeIds {
					if id == n.Id {
						occurrences++
						assert.Equal(t, c.Id, n.ClusterId)
					}
				}
			}
			assert.Equal(t, 1, occurrences, n.Phrase)
		}
	})

	t.Run("letter labels in order", func(t *testing.T) {
		for i, c := range clusters {
			assert.Equal(t, string(rune('A'+i)), c.Id)
		}
	})

	t.Run("centroid placeholder until layout", func(t *testing.T) {
		for _, c := range clusters {
			assert.Equal(t, core.Coordinate{X: 0.5, Y: 0.5}, c.Centroid)
		}
	})
}

func TestClusterGroupsRelatedPhrases(t *testing.T) {
	nodes := testNodes()
	cfg := DefaultConfig()
	cfg.Count = 3
	engine := newTestEngine(t, cfg)

	engine.Cluster(nodes, similarityFor(nodes))

	// The two ränta phrases, the two bästa phrases and the two leasing
	// phrases each collapse into one cluster.
	assert.Equal(t, nodes[0].ClusterId, nodes[1].ClusterId)
	assert.Equal(t, nodes[2].ClusterId, nodes[3].ClusterId)
	assert.Equal(t, nodes[4].ClusterId, nodes[5].ClusterId)
	assert.NotEqual(t, nodes[0].ClusterId, nodes[2].ClusterId)
}

func TestClusterCountResolution(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())

	tests := []struct {
		n, want int
	}{
		{1, 1},  // auto 3 capped at n
		{2, 2},  // auto 3 capped at n
		{10, 3}, // round(10/10)=1 clamped up to 3
		{50, 5},
		{100, 8}, // clamped down to 8
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, engine.clusterCount(tc.n), "n=%d", tc.n)
	}

	t.Run("explicit count capped at n", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Count = 6
		engine := newTestEngine(t, cfg)
		assert.Equal(t, 2, engine.clusterCount(2))
	})
}

func TestClusterSingleNode(t *testing.T) {
	nodes := []*core.Node{node("billån", core.IntentTransactional, core.PerspectiveSeeker)}
	engine := newTestEngine(t, DefaultConfig())

	clusters := engine.Cluster(nodes, similarityFor(nodes))
	require.Len(t, clusters, 1)
	assert.Equal(t, "A", clusters[0].Id)
	assert.Equal(t, "A", nodes[0].ClusterId)
}

func TestClusterEmptyInput(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())
	assert.Empty(t, engine.Cluster(nil, nil))
}

func TestClusterMetadata(t *testing.T) {
	nodes := []*core.Node{
		node("billån ränta", core.IntentTransactional, core.PerspectiveSeeker),
		node("billån kalkyl", core.IntentTransactional, core.PerspectiveSeeker),
		node("bästa billån", core.IntentCommercial, core.PerspectiveAdvisor),
	}
	cfg := DefaultConfig()
	cfg.Count = 1
	engine := newTestEngine(t, cfg)

	clusters := engine.Cluster(nodes, similarityFor(nodes))
	require.Len(t, clusters, 1)
	c := clusters[0]

	assert.Equal(t, core.IntentTransactional, c.DominantIntent)
	assert.Equal(t, core.PerspectiveSeeker, c.DominantPerspective)

	// billån appears in all three phrases and leads the hubs; the bästa
	// modifier is not content-bearing and never appears.
	require.NotEmpty(t, c.HubEntities)
	assert.Equal(t, "billån", c.HubEntities[0])
	assert.NotContains(t, c.HubEntities, "bästa")
	assert.LessOrEqual(t, len(c.HubEntities), 5)

	assert.Equal(t, "billån · transactional", c.Label)
}

func TestClusterDeterminism(t *testing.T) {
	engine := newTestEngine(t, DefaultConfig())

	build := func() ([]*core.Node, []*core.Cluster) {
		nodes := testNodes()
		return nodes, engine.Cluster(nodes, similarityFor(nodes))
	}

	firstNodes, firstClusters := build()
	for range 5 {
		nodes, clusters := build()
		require.Equal(t, len(firstClusters), len(clusters))
		for i := range clusters {
			assert.Equal(t, firstClusters[i], clusters[i])
		}
		for i := range nodes {
			assert.Equal(t, firstNodes[i].ClusterId, nodes[i].ClusterId)
		}
	}
}
