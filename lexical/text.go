package lexical

import "strings"

// Terms splits a phrase into its unigram and bigram terms.
// Phrases are expected to be pre-normalized (lowercased, whitespace
// collapsed) by the candidate normalizer; this function only trims
// punctuation from token edges.
func Terms(phrase string) []string {
	words := strings.Fields(phrase)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.Trim(strings.ToLower(word), ".,!?;:'\"-()[]{}")
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}

	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}

	return terms
}
