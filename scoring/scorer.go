package scoring

import (
	"log/slog"

	"github.com/poiesic/phrasemap/core"
	"github.com/poiesic/phrasemap/lexical"
	"github.com/poiesic/phrasemap/taxonomy"
)

// featureOrder lists the recognized features in accumulation order.
// Weights for names outside this list do not contribute.
var featureOrder = []string{
	core.FeatureEntityOverlap,
	core.FeatureExternalOverlap,
	core.FeatureLexicalSimilarity,
	core.FeatureIntentCompatibility,
	core.FeaturePerspectiveAlignment,
}

// Weights maps feature names to their contribution to the relevance score.
// By convention the weights sum to 1, but this is not enforced; the final
// score is clamped to [0,1] either way.
type Weights map[string]float64

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		core.FeatureEntityOverlap:        0.20,
		core.FeatureExternalOverlap:      0.20,
		core.FeatureLexicalSimilarity:    0.25,
		core.FeatureIntentCompatibility:  0.20,
		core.FeaturePerspectiveAlignment: 0.15,
	}
}

// Validate checks that the weights are usable.
func (w Weights) Validate() error {
	if len(w) == 0 {
		return ErrNoWeights
	}
	for name, weight := range w {
		if weight < 0 {
			return &NegativeWeightError{Feature: name, Weight: weight}
		}
	}
	return nil
}

// Result is the scorer output. The joint matrix and seed-similarity vector
// are exposed so later stages can reuse them instead of recomputing.
// Matrix row 0 is the seed; candidate i is row i+1.
type Result struct {
	Scored         []core.ScoredCandidate
	Matrix         *lexical.Matrix
	SeedSimilarity []float64 // cosine of each candidate against the seed
}

// CandidateSimilarity returns the lexical similarity between candidates i
// and j, translating candidate indices to matrix rows.
func (r *Result) CandidateSimilarity(i, j int) float64 {
	return r.Matrix.Cosine(i+1, j+1)
}

// Scorer computes feature vectors and relevance scores.
type Scorer struct {
	pack    *taxonomy.Pack
	weights Weights
	logger  *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a scorer over a taxonomy pack and scoring weights.
func NewScorer(pack *taxonomy.Pack, weights Weights, opts ...Option) (*Scorer, error) {
	if pack == nil {
		return nil, ErrPackRequired
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	s := &Scorer{
		pack:    pack,
		weights: weights,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Score computes features and relevance for every candidate against the
// seed. The seed's intent and perspective are classified from its phrase
// when the caller left them empty. Candidates with empty phrases score 0 on
// every feature rather than producing an error.
func (s *Scorer) Score(seed core.Seed, candidates []core.Candidate) *Result {
	if seed.Intent == "" || seed.Perspective == "" {
		intent, perspective := s.pack.Classify(seed.Phrase)
		if seed.Intent == "" {
			seed.Intent = intent
		}
		if seed.Perspective == "" {
			seed.Perspective = perspective
		}
	}

	phrases := make([]string, 0, len(candidates)+1)
	phrases = append(phrases, seed.Phrase)
	for _, candidate := range candidates {
		phrases = append(phrases, candidate.Phrase)
	}

	matrix := lexical.NewMatrix(phrases)
	seedEntities := s.pack.EntitySet(seed.Phrase)

	scored := make([]core.ScoredCandidate, len(candidates))
	seedSimilarity := make([]float64, len(candidates))

	for i, candidate := range candidates {
		intent, perspective := s.pack.Classify(candidate.Phrase)
		similarity := matrix.Cosine(0, i+1)
		seedSimilarity[i] = similarity

		features := map[string]float64{
			core.FeatureEntityOverlap:        jaccard(seedEntities, s.pack.EntitySet(candidate.Phrase)),
			core.FeatureExternalOverlap:      externalOverlap(candidate),
			core.FeatureLexicalSimilarity:    core.Clamp01(similarity),
			core.FeatureIntentCompatibility:  core.Clamp01(1 - s.pack.IntentDistanceBetween(seed.Intent, intent)),
			core.FeaturePerspectiveAlignment: core.Clamp01(1 - s.pack.PerspectiveDistanceBetween(seed.Perspective, perspective)),
		}

		// Fixed accumulation order keeps the floating-point sum identical
		// across runs; selection tie-breaks depend on exact scores.
		var relevance float64
		for _, name := range featureOrder {
			relevance += s.weights[name] * features[name]
		}
		relevance = core.Clamp01(relevance)

		scored[i] = core.ScoredCandidate{
			Candidate:   candidate,
			Id:          core.IDFromContent(candidate.Phrase),
			Intent:      intent,
			Perspective: perspective,
			Confidence:  confidence(candidate, relevance, features),
			Features:    features,
			Relevance:   relevance,
		}
	}

	s.logger.Debug("scored candidate pool",
		"seed", seed.Phrase,
		"candidates", len(candidates),
		"vocabulary", matrix.VocabularySize())

	return &Result{
		Scored:         scored,
		Matrix:         matrix,
		SeedSimilarity: seedSimilarity,
	}
}

// confidence derives how much the pipeline trusts a candidate. Relevance
// carries most of the signal; measured external overlap adds trust that pure
// heuristics cannot. The provenance cap is applied last and is a hard
// policy: template-generated candidates never exceed their ceiling.
func confidence(candidate core.Candidate, relevance float64, features map[string]float64) float64 {
	base := core.Clamp01(0.4 + 0.4*relevance + 0.2*features[core.FeatureExternalOverlap])
	ceiling := candidate.Provenance.ConfidenceCap()
	if base > ceiling {
		return ceiling
	}
	return base
}

// externalOverlap reads the externally supplied overlap metric. Absence is
// intentional under-confidence, not an error.
func externalOverlap(candidate core.Candidate) float64 {
	if candidate.Metrics == nil {
		return 0
	}
	return core.Clamp01(candidate.Metrics[core.MetricExternalOverlap])
}

// jaccard computes set overlap between two entity sets. Two empty sets share
// nothing measurable, so the result is 0 rather than 1.
func jaccard(a, b map[string]bool) float64 {
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
	return core.Clamp01(float64(intersection) / float64(union))
}
