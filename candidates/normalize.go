package candidates

import (
	"strings"

	"github.com/poiesic/phrasemap/core"
)

// Normalize collapses a phrase to the canonical form the scorer expects:
// lowercase with single-space separation.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// Prepare normalizes a raw candidate pool. Empty phrases, duplicates of
// the seed and repeated phrases are dropped; the first occurrence of a
// phrase wins, so the pool keeps its generator order.
func Prepare(seedPhrase string, pool []core.Candidate) []core.Candidate {
	normalizedSeed := Normalize(seedPhrase)

	out := make([]core.Candidate, 0, len(pool))
	seen := make(map[string]bool, len(pool))
	for _, candidate := range pool {
		phrase := Normalize(candidate.Phrase)
		if phrase == "" || phrase == normalizedSeed || seen[phrase] {
			continue
		}
		seen[phrase] = true

		candidate.Phrase = phrase
		out = append(out, candidate)
	}
	return out
}
