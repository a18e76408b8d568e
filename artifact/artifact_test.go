package artifact

import (
	"encoding/json"
	"testing"

	"github.com/poiesic/phrasemap/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed() *core.Seed {
	return &core.Seed{
		Id:          core.IDFromContent("billån"),
		Phrase:      "billån",
		Intent:      core.IntentTransactional,
		Perspective: core.PerspectiveSeeker,
		X:           0.8,
		Y:           0.25,
	}
}

func node(phrase string, relevance float64) *core.Node {
	n := core.NewNode(core.ScoredCandidate{
		Candidate: core.Candidate{
			Phrase:     phrase,
			Provenance: core.ProvenanceProvider,
			Rationale:  "provider suggestion",
		},
		Id:          core.IDFromContent(phrase),
		Intent:      core.IntentTransactional,
		Perspective: core.PerspectiveSeeker,
		Confidence:  0.8,
		Features:    map[string]float64{core.FeatureLexicalSimilarity: 0.6},
		Relevance:   relevance,
	})
	n.ClusterId = "A"
	return n
}

func seedEdge(s *core.Seed, n *core.Node) core.Synapse {
	return core.Synapse{
		From:     s.Id,
		To:       n.Id,
		Strength: n.Relevance,
		Types:    []core.SynapseType{core.SynapseSharedEntity},
		Card: core.SynapseCard{
			Direction:       "bidirectional",
			Confidence:      0.8,
			BridgeStatement: "Both revolve around billån.",
			Evidence: []core.Evidence{
				{Kind: core.FeatureLexicalSimilarity, Value: 0.6, Confidence: 0.8, Detail: "term-vector cosine similarity"},
			},
		},
	}
}

func TestNewGraph(t *testing.T) {
	s := seed()
	nodes := []*core.Node{node("billån ränta", 0.7)}
	edges := []core.Synapse{seedEdge(s, nodes[0])}
	clusters := []*core.Cluster{{
		Id:                  "A",
		Label:               "billån · transactional",
		NodeIds:             []core.ID{nodes[0].Id},
		DominantIntent:      core.IntentTransactional,
		DominantPerspective: core.PerspectiveSeeker,
		HubEntities:         []string{"billån"},
		Centroid:            core.Coordinate{X: 0.8, Y: 0.25},
	}}

	graph := NewGraph(s, nodes, edges, clusters)

	t.Run("meta counts", func(t *testing.T) {
		assert.Equal(t, "phrasemap", graph.Meta.Generator)
		assert.Equal(t, SchemaVersion, graph.Meta.SchemaVersion)
		assert.Equal(t, "billån", graph.Meta.SeedPhrase)
		assert.Equal(t, 1, graph.Meta.NodeCount)
		assert.Equal(t, 1, graph.Meta.EdgeCount)
		assert.Equal(t, 1, graph.Meta.ClusterCount)
	})

	t.Run("ids rendered as fixed-width hex", func(t *testing.T) {
		assert.Len(t, graph.Seed.Id, 16)
		assert.Len(t, graph.Nodes[0].Id, 16)
		assert.Equal(t, graph.Seed.Id, graph.Edges[0].From)
		assert.Equal(t, graph.Nodes[0].Id, graph.Edges[0].To)
		assert.Equal(t, graph.Nodes[0].Id, graph.Clusters[0].NodeIds[0])
	})

	t.Run("legend covers every synapse type", func(t *testing.T) {
		assert.Len(t, graph.Legend.SynapseTypes, 7)
		assert.Contains(t, graph.Legend.SynapseTypes, string(core.SynapseBridge))
	})

	t.Run("flagged nodes surface as warnings", func(t *testing.T) {
		flagged := node("hur fungerar leasing", 0.4)
		flagged.AddFlag("far-from-anchor")
		g := NewGraph(s, []*core.Node{flagged}, nil, nil)
		require.Len(t, g.Warnings, 1)
		assert.Contains(t, g.Warnings[0], "far-from-anchor")
		assert.Contains(t, g.Warnings[0], "hur fungerar leasing")
	})
}

func TestGraphJSONShape(t *testing.T) {
	s := seed()
	nodes := []*core.Node{node("billån ränta", 0.7)}
	graph := NewGraph(s, nodes, []core.Synapse{seedEdge(s, nodes[0])}, nil)

	data, err := json.Marshal(graph)
	require.NoError(t, err)
	text := string(data)

	t.Run("documented fields present", func(t *testing.T) {
		for _, field := range []string{
			`"meta"`, `"seed"`, `"nodes"`, `"edges"`, `"clusters"`, `"legend"`, `"warnings"`,
			`"relevance_score"`, `"cluster_id"`, `"synapse_card"`, `"bridge_statement"`,
			`"direction"`, `"evidence"`,
		} {
			assert.Contains(t, text, field)
		}
	})

	t.Run("empty collections marshal as arrays", func(t *testing.T) {
		assert.Contains(t, text, `"clusters":[]`)
		assert.Contains(t, text, `"warnings":[]`)
		assert.Contains(t, text, `"flags":[]`)
	})

	t.Run("empty shifts omitted", func(t *testing.T) {
		assert.NotContains(t, text, `"intent_shift"`)
		assert.NotContains(t, text, `"perspective_shift"`)
	})

	t.Run("no wall-clock fields", func(t *testing.T) {
		assert.NotContains(t, text, "time")
		assert.NotContains(t, text, "date")
	})
}

func TestNewReport(t *testing.T) {
	s := seed()
	nodes := []*core.Node{
		node("billån ränta", 0.5),
		node("billån kalkyl", 0.9),
		node("bästa billån", 0.7),
	}
	edges := make([]core.Synapse, len(nodes))
	for i, n := range nodes {
		edges[i] = seedEdge(s, n)
	}

	report := NewReport(s, nodes, edges)

	t.Run("sorted by descending relevance", func(t *testing.T) {
		require.Len(t, report.Selected, 3)
		assert.Equal(t, "billån kalkyl", report.Selected[0].Phrase)
		assert.Equal(t, "bästa billån", report.Selected[1].Phrase)
		assert.Equal(t, "billån ränta", report.Selected[2].Phrase)
	})

	t.Run("each entry carries its seed card", func(t *testing.T) {
		for _, entry := range report.Selected {
			assert.Equal(t, "bidirectional", entry.SynapseCard.Direction)
			assert.NotEmpty(t, entry.SynapseCard.Evidence)
		}
	})

	t.Run("equal relevance keeps input order", func(t *testing.T) {
		tied := []*core.Node{node("a billån", 0.5), node("b billån", 0.5)}
		r := NewReport(s, tied, nil)
		assert.Equal(t, "a billån", r.Selected[0].Phrase)
		assert.Equal(t, "b billån", r.Selected[1].Phrase)
	})
}

func TestArtifactDeterminism(t *testing.T) {
	build := func() ([]byte, []byte) {
		s := seed()
		nodes := []*core.Node{node("billån ränta", 0.7), node("bästa billån", 0.5)}
		edges := []core.Synapse{seedEdge(s, nodes[0]), seedEdge(s, nodes[1])}

		graph, err := json.Marshal(NewGraph(s, nodes, edges, nil))
		require.NoError(t, err)
		report, err := json.Marshal(NewReport(s, nodes, edges))
		require.NoError(t, err)
		return graph, report
	}

	firstGraph, firstReport := build()
	for range 5 {
		graph, report := build()
		assert.Equal(t, firstGraph, graph)
		assert.Equal(t, firstReport, report)
	}
}
