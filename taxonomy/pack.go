package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/phrasemap/core"
	"gopkg.in/yaml.v3"
)

// UnknownDistance is the fallback for label pairs a pack does not cover.
const UnknownDistance = 0.5

// centerAxis is the fallback coordinate for labels without an axis entry.
const centerAxis = 0.5

// LabelRule maps marker tokens to a classification label. The first rule
// whose marker appears in a phrase wins.
type LabelRule struct {
	Label   string   `yaml:"label"`
	Markers []string `yaml:"markers"`
}

// EntityRule maps surface patterns to a canonical entity form.
type EntityRule struct {
	Canonical string   `yaml:"canonical"`
	Type      string   `yaml:"type"`
	Patterns  []string `yaml:"patterns"`
}

// Entity is a heuristically extracted entity occurrence.
type Entity struct {
	Canonical string
	Type      string
}

// Extractor extracts entities from a phrase. The pipeline depends on this
// capability rather than on Pack directly so packs can be swapped for other
// extraction strategies.
type Extractor interface {
	Extract(phrase string) []Entity
}

// Pack bundles every lookup table the pipeline needs.
type Pack struct {
	Name string `yaml:"name"`

	IntentDistance      map[string]map[string]float64 `yaml:"intent_distance"`
	PerspectiveDistance map[string]map[string]float64 `yaml:"perspective_distance"`

	IntentAxis      map[string]float64 `yaml:"intent_axis"`
	PerspectiveAxis map[string]float64 `yaml:"perspective_axis"`

	IntentRules        []LabelRule `yaml:"intent_rules"`
	PerspectiveRules   []LabelRule `yaml:"perspective_rules"`
	DefaultIntent      string      `yaml:"default_intent"`
	DefaultPerspective string      `yaml:"default_perspective"`

	Entities           []EntityRule `yaml:"entities"`
	ContentEntityTypes []string     `yaml:"content_entity_types"`

	VersusMarkers     []string `yaml:"versus_markers"`
	ProceduralMarkers []string `yaml:"procedural_markers"`
}

var _ Extractor = (*Pack)(nil)

// Load reads a pack from a YAML file and validates it.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackUnreadable, err)
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPackUnreadable, err)
	}

	if err := pack.Validate(); err != nil {
		return nil, err
	}

	return &pack, nil
}

// Validate checks that the pack is usable. Distance and axis values must lie
// in [0,1]; a pack with no intent rules cannot classify anything.
func (p *Pack) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPack)
	}
	if len(p.IntentRules) == 0 {
		return fmt.Errorf("%w: at least one intent rule is required", ErrInvalidPack)
	}
	if p.DefaultIntent == "" || p.DefaultPerspective == "" {
		return fmt.Errorf("%w: default intent and perspective are required", ErrInvalidPack)
	}

	for from, row := range p.IntentDistance {
		for to, d := range row {
			if d < 0 || d > 1 {
				return fmt.Errorf("%w: intent distance %s->%s is %v, want [0,1]", ErrInvalidPack, from, to, d)
			}
		}
	}
	for from, row := range p.PerspectiveDistance {
		for to, d := range row {
			if d < 0 || d > 1 {
				return fmt.Errorf("%w: perspective distance %s->%s is %v, want [0,1]", ErrInvalidPack, from, to, d)
			}
		}
	}
	for label, x := range p.IntentAxis {
		if x < 0 || x > 1 {
			return fmt.Errorf("%w: intent axis %s is %v, want [0,1]", ErrInvalidPack, label, x)
		}
	}
	for label, y := range p.PerspectiveAxis {
		if y < 0 || y > 1 {
			return fmt.Errorf("%w: perspective axis %s is %v, want [0,1]", ErrInvalidPack, label, y)
		}
	}
	for _, rule := range p.Entities {
		if rule.Canonical == "" || rule.Type == "" {
			return fmt.Errorf("%w: entity rule needs canonical form and type", ErrInvalidPack)
		}
	}

	return nil
}

// IntentDistanceBetween looks up the distance between two intent labels.
// Identical labels are distance 0. The table may be asymmetric; the reverse
// direction is consulted before falling back to UnknownDistance.
func (p *Pack) IntentDistanceBetween(a, b core.Intent) float64 {
	return lookupDistance(p.IntentDistance, string(a), string(b))
}

// PerspectiveDistanceBetween is the perspective analogue of
// IntentDistanceBetween.
func (p *Pack) PerspectiveDistanceBetween(a, b core.Perspective) float64 {
	return lookupDistance(p.PerspectiveDistance, string(a), string(b))
}

func lookupDistance(table map[string]map[string]float64, a, b string) float64 {
	if a == b {
		return 0
	}
	if row, ok := table[a]; ok {
		if d, ok := row[b]; ok {
			return d
		}
	}
	if row, ok := table[b]; ok {
		if d, ok := row[a]; ok {
			return d
		}
	}
	return UnknownDistance
}

// AxisX returns the horizontal layout coordinate for an intent label.
func (p *Pack) AxisX(intent core.Intent) float64 {
	if x, ok := p.IntentAxis[string(intent)]; ok {
		return core.Clamp01(x)
	}
	return centerAxis
}

// AxisY returns the vertical layout coordinate for a perspective label.
func (p *Pack) AxisY(perspective core.Perspective) float64 {
	if y, ok := p.PerspectiveAxis[string(perspective)]; ok {
		return core.Clamp01(y)
	}
	return centerAxis
}

// Classify labels a phrase with an intent and a perspective. Rules are
// consulted in pack order; the first rule with a matching marker wins, and
// the pack defaults apply when nothing matches.
func (p *Pack) Classify(phrase string) (core.Intent, core.Perspective) {
	intent := core.Intent(p.DefaultIntent)
	for _, rule := range p.IntentRules {
		if matchesAny(phrase, rule.Markers) {
			intent = core.Intent(rule.Label)
			break
		}
	}

	perspective := core.Perspective(p.DefaultPerspective)
	for _, rule := range p.PerspectiveRules {
		if matchesAny(phrase, rule.Markers) {
			perspective = core.Perspective(rule.Label)
			break
		}
	}

	return intent, perspective
}

// Extract returns the entities whose patterns occur in the phrase, in rule
// order, deduplicated by canonical form.
func (p *Pack) Extract(phrase string) []Entity {
	var entities []Entity
	seen := make(map[string]bool)
	for _, rule := range p.Entities {
		if seen[rule.Canonical] {
			continue
		}
		if matchesAny(phrase, rule.Patterns) {
			seen[rule.Canonical] = true
			entities = append(entities, Entity{Canonical: rule.Canonical, Type: rule.Type})
		}
	}
	return entities
}

// EntitySet returns the canonical forms extracted from a phrase as a set,
// for overlap computations.
func (p *Pack) EntitySet(phrase string) map[string]bool {
	set := make(map[string]bool)
	for _, entity := range p.Extract(phrase) {
		set[entity.Canonical] = true
	}
	return set
}

// ContentBearing reports whether an entity type counts toward cluster hub
// entities.
func (p *Pack) ContentBearing(entityType string) bool {
	for _, t := range p.ContentEntityTypes {
		if t == entityType {
			return true
		}
	}
	return false
}

// HasVersusMarker reports whether the phrase contains a comparison marker.
func (p *Pack) HasVersusMarker(phrase string) bool {
	return matchesAny(phrase, p.VersusMarkers)
}

// HasProceduralMarker reports whether the phrase contains a task or
// procedure marker.
func (p *Pack) HasProceduralMarker(phrase string) bool {
	return matchesAny(phrase, p.ProceduralMarkers)
}

// matchesAny does whole-token matching: a marker matches when it appears in
// the phrase bounded by whitespace. Markers may span multiple tokens.
func matchesAny(phrase string, markers []string) bool {
	padded := " " + strings.ToLower(phrase) + " "
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		if strings.Contains(padded, " "+strings.ToLower(marker)+" ") {
			return true
		}
	}
	return false
}
