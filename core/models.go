package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical phrases
// always map to the same node identity across runs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// String renders the ID as a fixed-width hex string. JSON artifacts carry IDs
// in this form because uint64 values above 2^53 are not safe as JSON numbers.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Intent is a search-intent label drawn from the taxonomy pack.
type Intent string

// Well-known intent labels shipped with the default taxonomy pack.
// Packs may define additional labels; distance lookups fall back to 0.5
// for pairs the pack does not cover.
const (
	IntentInformational Intent = "informational"
	IntentTransactional Intent = "transactional"
	IntentNavigational  Intent = "navigational"
	IntentCommercial    Intent = "commercial"
)

// Perspective is a searcher-perspective label drawn from the taxonomy pack.
type Perspective string

// Well-known perspective labels shipped with the default taxonomy pack.
const (
	PerspectiveSeeker   Perspective = "seeker"
	PerspectiveAdvisor  Perspective = "advisor"
	PerspectiveProvider Perspective = "provider"
	PerspectiveComparer Perspective = "comparer"
)

// Provenance identifies the origin of a candidate phrase.
type Provenance int

const (
	// ProvenanceProvider marks candidates sourced from a suggestion provider API.
	ProvenanceProvider Provenance = iota + 1
	// ProvenanceExternal marks candidates derived from an external result snapshot.
	ProvenanceExternal
	// ProvenanceTemplate marks candidates produced by local template expansion.
	ProvenanceTemplate
)

// Provenance-based confidence ceilings. These are hard policy, not tunables:
// a template-generated candidate must never report confidence above
// templateConfidenceCap regardless of how well it scores.
const (
	sourcedConfidenceCap  = 0.90
	templateConfidenceCap = 0.55
)

// ConfidenceCap returns the maximum confidence a candidate with this
// provenance may carry.
func (p Provenance) ConfidenceCap() float64 {
	if p == ProvenanceTemplate {
		return templateConfidenceCap
	}
	return sourcedConfidenceCap
}

func (p Provenance) String() string {
	switch p {
	case ProvenanceProvider:
		return "provider"
	case ProvenanceExternal:
		return "external"
	case ProvenanceTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// ParseProvenance maps the string form back to a Provenance.
func ParseProvenance(s string) (Provenance, error) {
	switch s {
	case "provider":
		return ProvenanceProvider, nil
	case "external":
		return ProvenanceExternal, nil
	case "template":
		return ProvenanceTemplate, nil
	default:
		return 0, fmt.Errorf("%w: unknown provenance %q", ErrInvalidProvenance, s)
	}
}

// Feature names produced by the scorer. Every feature value is clamped to [0,1].
const (
	FeatureEntityOverlap        = "entity_overlap"
	FeatureExternalOverlap      = "external_overlap"
	FeatureLexicalSimilarity    = "lexical_similarity"
	FeatureIntentCompatibility  = "intent_compatibility"
	FeaturePerspectiveAlignment = "perspective_alignment"
)

// MetricExternalOverlap is the candidate metric key carrying the externally
// measured overlap with the seed's result snapshot. Absent means 0.
const MetricExternalOverlap = "external_overlap"

// Candidate is a raw phrase proposed by the candidate-generation collaborator.
// Candidates are immutable once scored.
type Candidate struct {
	Phrase     string
	Provenance Provenance
	Rationale  string
	Metrics    map[string]float64 // optional external metrics, e.g. external_overlap
}

// ScoredCandidate is a Candidate after feature scoring.
type ScoredCandidate struct {
	Candidate
	Id          ID
	Intent      Intent
	Perspective Perspective
	Confidence  float64            // capped by Provenance.ConfidenceCap
	Features    map[string]float64 // feature name -> value in [0,1]
	Relevance   float64            // weighted feature sum, clamped to [0,1]
}

// Node is a ScoredCandidate promoted by the diversified selector.
// ClusterId is filled by the cluster engine, X/Y/Flags by the layout assigner.
type Node struct {
	ScoredCandidate
	ClusterId string
	X         float64
	Y         float64
	Size      float64
	Flags     []string
}

// NewNode promotes a scored candidate to a node. Size is a display weight
// derived from relevance so more relevant nodes render larger.
func NewNode(sc ScoredCandidate) *Node {
	return &Node{
		ScoredCandidate: sc,
		Size:            Clamp01(0.4 + 0.6*sc.Relevance),
	}
}

// AddFlag appends a flag to the node. Flags are append-only and deduplicated.
func (n *Node) AddFlag(flag string) {
	for _, f := range n.Flags {
		if f == flag {
			return
		}
	}
	n.Flags = append(n.Flags, flag)
}

// Coordinate is a 2D point in the unit square.
type Coordinate struct {
	X float64
	Y float64
}

// Cluster groups nodes that are close under the multi-criteria distance.
// The centroid is a placeholder (0.5, 0.5) until the layout assigner has
// produced node coordinates.
type Cluster struct {
	Id                  string // letter label "A".."Z"
	Label               string
	NodeIds             []ID
	DominantIntent      Intent
	DominantPerspective Perspective
	HubEntities         []string
	Centroid            Coordinate
}

// SynapseType classifies the relationship an edge expresses.
type SynapseType string

const (
	SynapseSerpOverlap      SynapseType = "serp_overlap"
	SynapseSharedEntity     SynapseType = "shared_entity"
	SynapseComparative      SynapseType = "comparative"
	SynapseTaskChain        SynapseType = "task_chain"
	SynapseBridge           SynapseType = "bridge"
	SynapseIntentShift      SynapseType = "intent_shift"
	SynapsePerspectiveShift SynapseType = "perspective_shift"
)

// synapsePriority is an explicit ranking over the closed set of synapse
// types. Lower is higher priority. Bridge outranks the two individual shift
// types it subsumes; classification keeps at most MaxSynapseTypes entries.
var synapsePriority = map[SynapseType]int{
	SynapseSerpOverlap:      0,
	SynapseSharedEntity:     1,
	SynapseComparative:      2,
	SynapseTaskChain:        3,
	SynapseBridge:           4,
	SynapseIntentShift:      5,
	SynapsePerspectiveShift: 6,
}

// MaxSynapseTypes bounds the types slice on every edge.
const MaxSynapseTypes = 3

// Priority returns the rank of the type among all synapse types.
// Unknown types sort last.
func (t SynapseType) Priority() int {
	if p, ok := synapsePriority[t]; ok {
		return p
	}
	return len(synapsePriority)
}

// Evidence is a single scored justification attached to a synapse card.
type Evidence struct {
	Kind       string
	Value      float64
	Confidence float64
	Detail     string
}

// SynapseCard carries the human-readable explanation of an edge.
type SynapseCard struct {
	Direction        string // always "bidirectional"
	IntentShift      string // "from→to" when the labels differ, otherwise empty
	PerspectiveShift string
	Confidence       float64
	BridgeStatement  string
	Evidence         []Evidence
}

// Synapse is a typed, evidenced relationship between the seed and a node or
// between two nodes in the same cluster. Edges are derived data and are
// recomputed on every pipeline run.
type Synapse struct {
	From     ID
	To       ID
	Strength float64
	Types    []SynapseType
	Card     SynapseCard
}

// Seed is the anchor phrase the expansion is built around.
type Seed struct {
	Id          ID
	Phrase      string
	Intent      Intent
	Perspective Perspective
	X           float64
	Y           float64
}

// Clamp01 clamps v to the closed unit interval. Every feature value, score,
// strength and confidence in the pipeline passes through this.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
