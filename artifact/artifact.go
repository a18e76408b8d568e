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

package artifact

import (
	"fmt"
	"sort"

	"github.com/poiesic/phrasemap/core"
)

// SchemaVersion identifies the artifact shape for downstream validators.
const SchemaVersion = 1

// generatorName is stamped into artifact metadata.
const generatorName = "phrasemap"

// Meta describes an artifact without any wall-clock data.
type Meta struct {
	Generator     string `json:"generator"`
	SchemaVersion int    `json:"schema_version"`
	SeedPhrase    string `json:"seed_phrase"`
	NodeCount     int    `json:"node_count"`
	EdgeCount     int    `json:"edge_count"`
	ClusterCount  int    `json:"cluster_count"`
}

// Seed is the anchor as rendered into artifacts.
type Seed struct {
	Id          string  `json:"id"`
	Phrase      string  `json:"phrase"`
	Intent      string  `json:"intent"`
	Perspective string  `json:"perspective"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// Node is a selected phrase as rendered into artifacts.
type Node struct {
	Id          string             `json:"id"`
	Phrase      string             `json:"phrase"`
	Provenance  string             `json:"provenance"`
	Rationale   string             `json:"rationale"`
	Intent      string             `json:"intent"`
	Perspective string             `json:"perspective"`
	Confidence  float64            `json:"confidence"`
	Relevance   float64            `json:"relevance_score"`
	Features    map[string]float64 `json:"features"`
	ClusterId   string             `json:"cluster_id"`
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
	Size        float64            `json:"size"`
	Flags       []string           `json:"flags"`
}

// Evidence is one scored justification on a synapse card.
type Evidence struct {
	Kind       string  `json:"kind"`
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"`
	Detail     string  `json:"detail"`
}

// SynapseCard explains an edge to a human reader.
type SynapseCard struct {
	Direction        string     `json:"direction"`
	IntentShift      string     `json:"intent_shift,omitempty"`
	PerspectiveShift string     `json:"perspective_shift,omitempty"`
	Confidence       float64    `json:"confidence"`
	BridgeStatement  string     `json:"bridge_statement"`
	Evidence         []Evidence `json:"evidence"`
}

// Edge is a typed relationship as rendered into artifacts.
type Edge struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	Strength float64     `json:"strength"`
	Types    []string    `json:"types"`
	Card     SynapseCard `json:"synapse_card"`
}

// Cluster is a node grouping as rendered into artifacts.
type Cluster struct {
	Id                  string     `json:"id"`
	Label               string     `json:"label"`
	NodeIds             []string   `json:"node_ids"`
	DominantIntent      string     `json:"dominant_intent"`
	DominantPerspective string     `json:"dominant_perspective"`
	HubEntities         []string   `json:"hub_entities"`
	Centroid            Coordinate `json:"centroid"`
}

// Coordinate is a 2D point in the unit square.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Legend documents the coordinate system and edge vocabulary for renderers.
type Legend struct {
	AxisX        string            `json:"axis_x"`
	AxisY        string            `json:"axis_y"`
	SynapseTypes map[string]string `json:"synapse_types"`
}

// Graph is the map artifact.
type Graph struct {
	Meta     Meta      `json:"meta"`
	Seed     Seed      `json:"seed"`
	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges"`
	Clusters []Cluster `json:"clusters"`
	Legend   Legend    `json:"legend"`
	Warnings []string  `json:"warnings"`
}

// SelectedNode is one entry in the ranked report: the node plus its seed
// synapse card and raw feature map.
type SelectedNode struct {
	Node
	SynapseCard SynapseCard `json:"synapse_card"`
}

// Report is the ranked-list artifact.
type Report struct {
	Meta     Meta           `json:"meta"`
	Seed     Seed           `json:"seed"`
	Selected []SelectedNode `json:"selected"`
}

// NewGraph assembles the map artifact from pipeline output.
func NewGraph(seed *core.Seed, nodes []*core.Node, edges []core.Synapse, clusters []*core.Cluster) Graph {
	outNodes := make([]Node, len(nodes))
	for i, n := range nodes {
		outNodes[i] = renderNode(n)
	}

	outEdges := make([]Edge, len(edges))
	for i, e := range edges {
		outEdges[i] = renderEdge(e)
	}

	outClusters := make([]Cluster, len(clusters))
	for i, c := range clusters {
		outClusters[i] = renderCluster(c)
	}

	return Graph{
		Meta:     meta(seed, len(nodes), len(edges), len(clusters)),
		Seed:     renderSeed(seed),
		Nodes:    outNodes,
		Edges:    outEdges,
		Clusters: outClusters,
		Legend:   legend(),
		Warnings: warnings(nodes),
	}
}

// NewReport assembles the ranked-list artifact. Selection order is by
// descending relevance; equal scores keep their node input order.
func NewReport(seed *core.Seed, nodes []*core.Node, edges []core.Synapse) Report {
	cardByNode := make(map[core.ID]SynapseCard, len(nodes))
	for _, e := range edges {
		if e.From == seed.Id {
			cardByNode[e.To] = renderCard(e.Card)
		}
	}

	selected := make([]SelectedNode, len(nodes))
	for i, n := range nodes {
		selected[i] = SelectedNode{
			Node:        renderNode(n),
			SynapseCard: cardByNode[n.Id],
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Relevance > selected[j].Relevance
	})

	return Report{
		Meta:     meta(seed, len(nodes), len(edges), 0),
		Seed:     renderSeed(seed),
		Selected: selected,
	}
}

func meta(seed *core.Seed, nodeCount, edgeCount, clusterCount int) Meta {
	return Meta{
		Generator:     generatorName,
		SchemaVersion: SchemaVersion,
		SeedPhrase:    seed.Phrase,
		NodeCount:     nodeCount,
		EdgeCount:     edgeCount,
		ClusterCount:  clusterCount,
	}
}

func renderSeed(seed *core.Seed) Seed {
	return Seed{
		Id:          seed.Id.String(),
		Phrase:      seed.Phrase,
		Intent:      string(seed.Intent),
		Perspective: string(seed.Perspective),
		X:           seed.X,
		Y:           seed.Y,
	}
}

func renderNode(n *core.Node) Node {
	features := make(map[string]float64, len(n.Features))
	for name, value := range n.Features {
		features[name] = value
	}

	flags := make([]string, len(n.Flags))
	copy(flags, n.Flags)

	return Node{
		Id:          n.Id.String(),
		Phrase:      n.Phrase,
		Provenance:  n.Provenance.String(),
		Rationale:   n.Rationale,
		Intent:      string(n.Intent),
		Perspective: string(n.Perspective),
		Confidence:  n.Confidence,
		Relevance:   n.Relevance,
		Features:    features,
		ClusterId:   n.ClusterId,
		X:           n.X,
		Y:           n.Y,
		Size:        n.Size,
		Flags:       flags,
	}
}

func renderEdge(e core.Synapse) Edge {
	types := make([]string, len(e.Types))
	for i, t := range e.Types {
		types[i] = string(t)
	}

	return Edge{
		From:     e.From.String(),
		To:       e.To.String(),
		Strength: e.Strength,
		Types:    types,
		Card:     renderCard(e.Card),
	}
}

func renderCard(c core.SynapseCard) SynapseCard {
	evidence := make([]Evidence, len(c.Evidence))
	for i, entry := range c.Evidence {
		evidence[i] = Evidence(entry)
	}

	return SynapseCard{
		Direction:        c.Direction,
		IntentShift:      c.IntentShift,
		PerspectiveShift: c.PerspectiveShift,
		Confidence:       c.Confidence,
		BridgeStatement:  c.BridgeStatement,
		Evidence:         evidence,
	}
}

func renderCluster(c *core.Cluster) Cluster {
	nodeIds := make([]string, len(c.NodeIds))
	for i, id := range c.NodeIds {
		nodeIds[i] = id.String()
	}

	hubs := make([]string, len(c.HubEntities))
	copy(hubs, c.HubEntities)

	return Cluster{
		Id:                  c.Id,
		Label:               c.Label,
		NodeIds:             nodeIds,
		DominantIntent:      string(c.DominantIntent),
		DominantPerspective: string(c.DominantPerspective),
		HubEntities:         hubs,
		Centroid:            Coordinate{X: c.Centroid.X, Y: c.Centroid.Y},
	}
}

// warnings lists flagged nodes for the artifact's warnings block.
func warnings(nodes []*core.Node) []string {
	out := []string{}
	for _, n := range nodes {
		for _, flag := range n.Flags {
			out = append(out, fmt.Sprintf("node %q: %s", n.Phrase, flag))
		}
	}
	return out
}

func legend() Legend {
	return Legend{
		AxisX: "intent, informational (left) to transactional (right)",
		AxisY: "perspective, seeker (bottom) to provider (top)",
		SynapseTypes: map[string]string{
			string(core.SynapseSerpOverlap):      "phrases share results in the external snapshot",
			string(core.SynapseSharedEntity):     "phrases mention the same entities",
			string(core.SynapseComparative):      "phrase weighs alternatives against each other",
			string(core.SynapseTaskChain):        "phrase is a step in a task sequence",
			string(core.SynapseBridge):           "edge crosses both an intent and a perspective boundary",
			string(core.SynapseIntentShift):      "edge crosses an intent boundary",
			string(core.SynapsePerspectiveShift): "edge crosses a perspective boundary",
		},
	}
}
