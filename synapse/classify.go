package synapse

import (
	"fmt"
	"strings"

	"github.com/poiesic/phrasemap/core"
)

// Feature thresholds for type classification.
const (
	serpOverlapThreshold  = 0.15
	sharedEntityThreshold = 0.35
)

// profile is the label-and-signal view of an edge that classification
// operates on. Seed edges and intra-cluster edges reduce to the same shape.
type profile struct {
	phrases         []string
	lexical         float64
	entityOverlap   float64
	externalOverlap float64

	fromIntent      core.Intent
	toIntent        core.Intent
	fromPerspective core.Perspective
	toPerspective   core.Perspective

	fromPhrase string
	toPhrase   string

	// targetIntent drives the task-chain bridge statement.
	targetIntent core.Intent

	sharedEntities   []string
	confidenceSource float64
}

func (p profile) intentShift() bool {
	return p.fromIntent != p.toIntent
}

func (p profile) perspectiveShift() bool {
	return p.fromPerspective != p.toPerspective
}

// classify returns 1 to 3 types in priority order. Conditions are evaluated
// in priority order and appended directly, so no sort is needed; bridge
// co-occurs with the individual shift types up to the slot cap.
func (b *Builder) classify(p profile) []core.SynapseType {
	var types []core.SynapseType

	if p.externalOverlap >= serpOverlapThreshold {
		types = append(types, core.SynapseSerpOverlap)
	}
	if p.entityOverlap >= sharedEntityThreshold {
		types = append(types, core.SynapseSharedEntity)
	}
	if b.anyVersus(p.phrases) {
		types = append(types, core.SynapseComparative)
	}
	if b.anyProcedural(p.phrases) {
		types = append(types, core.SynapseTaskChain)
	}
	if p.intentShift() && p.perspectiveShift() {
		types = append(types, core.SynapseBridge)
	}
	if p.intentShift() {
		types = append(types, core.SynapseIntentShift)
	}
	if p.perspectiveShift() {
		types = append(types, core.SynapsePerspectiveShift)
	}

	if len(types) == 0 {
		return []core.SynapseType{core.SynapseSharedEntity}
	}
	if len(types) > core.MaxSynapseTypes {
		types = types[:core.MaxSynapseTypes]
	}
	return types
}

// bridgeStatement picks one sentence by the first matching condition. The
// conditions are checked against the profile, not the capped type list, so
// a statement can reflect a signal the 3-slot cap squeezed out.
func (b *Builder) bridgeStatement(p profile) string {
	switch {
	case b.anyVersus(p.phrases):
		return fmt.Sprintf("Puts %q side by side with alternatives.", p.toPhrase)
	case b.anyProcedural(p.phrases) && p.targetIntent == core.IntentTransactional:
		return fmt.Sprintf("%q is a concrete step toward getting this done.", p.toPhrase)
	case p.intentShift() && p.perspectiveShift():
		return fmt.Sprintf("Reframes %q with a different intent and from a different perspective.", p.fromPhrase)
	case p.intentShift():
		return fmt.Sprintf("Approaches %q with %s intent instead of %s.", p.fromPhrase, p.toIntent, p.fromIntent)
	case len(p.sharedEntities) > 0:
		return fmt.Sprintf("Both revolve around %s.", strings.Join(p.sharedEntities, ", "))
	default:
		return fmt.Sprintf("Shares topical ground with %q.", p.fromPhrase)
	}
}

func (b *Builder) anyVersus(phrases []string) bool {
	for _, phrase := range phrases {
		if b.pack.HasVersusMarker(phrase) {
			return true
		}
	}
	return false
}

func (b *Builder) anyProcedural(phrases []string) bool {
	for _, phrase := range phrases {
		if b.pack.HasProceduralMarker(phrase) {
			return true
		}
	}
	return false
}

func entityDetail(shared []string) string {
	if len(shared) == 0 {
		return "no shared entities"
	}
	return "shared entities: " + strings.Join(shared, ", ")
}
