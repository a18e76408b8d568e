package selection

import (
	"log/slog"

	"github.com/poiesic/phrasemap/core"
)

// Config holds the MMR parameters and quota constraints.
type Config struct {
	// Target is the number of candidates to select.
	Target int `yaml:"target"`

	// Lambda trades relevance against diversity in [0,1]. 1 is pure
	// relevance ranking, 0 pure diversity.
	Lambda float64 `yaml:"lambda"`

	// MaxSameIntent bounds how many selected candidates may share an
	// intent label. Never relaxed.
	MaxSameIntent int `yaml:"max_same_intent"`

	// MaxSamePerspective bounds how many selected candidates may share a
	// perspective label. Never relaxed.
	MaxSamePerspective int `yaml:"max_same_perspective"`

	// MaxNearDuplicate is the budget of admitted near-duplicates. Once
	// spent, further near-duplicates are ineligible until the budget is
	// the only constraint blocking progress.
	MaxNearDuplicate int `yaml:"max_near_duplicate"`

	// NearDuplicateThreshold is the similarity at which a candidate counts
	// as a near-duplicate of something already selected.
	NearDuplicateThreshold float64 `yaml:"near_duplicate_threshold"`
}

// DefaultConfig returns the standard selection parameters.
func DefaultConfig() Config {
	return Config{
		Target:                 24,
		Lambda:                 0.7,
		MaxSameIntent:          10,
		MaxSamePerspective:     8,
		MaxNearDuplicate:       2,
		NearDuplicateThreshold: 0.92,
	}
}

// Validate checks the configuration. Selection parameters are configuration
// in the strict sense: a bad value fails the run up front.
func (c Config) Validate() error {
	if c.Target < 1 {
		return ErrInvalidTarget
	}
	if c.Lambda < 0 || c.Lambda > 1 {
		return ErrInvalidLambda
	}
	if c.MaxSameIntent < 1 || c.MaxSamePerspective < 1 {
		return ErrInvalidQuota
	}
	if c.MaxNearDuplicate < 0 {
		return ErrInvalidQuota
	}
	if c.NearDuplicateThreshold <= 0 || c.NearDuplicateThreshold > 1 {
		return ErrInvalidThreshold
	}
	return nil
}

// Similarity returns the lexical similarity between two candidates by their
// input indices.
type Similarity func(i, j int) float64

// Selector implements diversified greedy top-K selection.
type Selector struct {
	cfg    Config
	logger *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSelector creates a selector with the given configuration.
func NewSelector(cfg Config, opts ...Option) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Selector{
		cfg:    cfg,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Select returns up to Target candidates in selection order. A result
// shorter than Target is valid: it means the quotas blocked everything that
// remained. Similarity must be symmetric over the candidate indices.
func (s *Selector) Select(candidates []core.ScoredCandidate, similarity Similarity) []core.ScoredCandidate {
	if len(candidates) == 0 {
		return []core.ScoredCandidate{}
	}

	target := s.cfg.Target
	if target > len(candidates) {
		target = len(candidates)
	}

	state := &selectionState{
		selected:         make([]int, 0, target),
		taken:            make([]bool, len(candidates)),
		intentCount:      make(map[core.Intent]int),
		perspectiveCount: make(map[core.Perspective]int),
	}

	for len(state.selected) < target {
		pick := s.pickNext(candidates, similarity, state)
		if pick < 0 {
			if !state.duplicatesRelaxed {
				// Quotas blocked everything that remains; the only
				// constraint that may yield is the near-duplicate budget.
				state.duplicatesRelaxed = true
				continue
			}
			break
		}
		s.take(candidates, similarity, state, pick)
	}

	result := make([]core.ScoredCandidate, len(state.selected))
	for i, index := range state.selected {
		result[i] = candidates[index]
	}

	s.logger.Debug("selection complete",
		"pool", len(candidates),
		"selected", len(result),
		"target", s.cfg.Target,
		"duplicates_relaxed", state.duplicatesRelaxed)

	return result
}

type selectionState struct {
	selected          []int
	taken             []bool
	intentCount       map[core.Intent]int
	perspectiveCount  map[core.Perspective]int
	duplicatesUsed    int
	duplicatesRelaxed bool
}

// pickNext finds the best eligible candidate for the current round, or -1
// when nothing is eligible. Strict greater-than comparison makes ties break
// toward the lowest input index.
func (s *Selector) pickNext(candidates []core.ScoredCandidate, similarity Similarity, state *selectionState) int {
	best := -1
	var bestScore float64

	for i := range candidates {
		if state.taken[i] {
			continue
		}
		if state.intentCount[candidates[i].Intent] >= s.cfg.MaxSameIntent {
			continue
		}
		if state.perspectiveCount[candidates[i].Perspective] >= s.cfg.MaxSamePerspective {
			continue
		}

		redundancy := s.redundancy(similarity, state.selected, i)
		if redundancy >= s.cfg.NearDuplicateThreshold &&
			state.duplicatesUsed >= s.cfg.MaxNearDuplicate &&
			!state.duplicatesRelaxed {
			continue
		}

		score := s.cfg.Lambda*candidates[i].Relevance - (1-s.cfg.Lambda)*redundancy
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	return best
}

// take commits a pick, updating quotas and the near-duplicate budget.
func (s *Selector) take(candidates []core.ScoredCandidate, similarity Similarity, state *selectionState, pick int) {
	if s.redundancy(similarity, state.selected, pick) >= s.cfg.NearDuplicateThreshold {
		state.duplicatesUsed++
	}
	state.taken[pick] = true
	state.selected = append(state.selected, pick)
	state.intentCount[candidates[pick].Intent]++
	state.perspectiveCount[candidates[pick].Perspective]++
}

// redundancy is the maximum similarity of candidate i to anything already
// selected; 0 while the selection is empty, which reduces the first round to
// pure relevance ranking.
func (s *Selector) redundancy(similarity Similarity, selected []int, i int) float64 {
	var max float64
	for _, j := range selected {
		if sim := similarity(i, j); sim > max {
			max = sim
		}
	}
	return max
}
