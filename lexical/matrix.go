package lexical

import "math"

// termWeight is a single vocabulary entry in a sparse vector.
// Entries are kept sorted by index so dot products visit terms in a fixed
// order; floating-point sums are then identical across runs.
type termWeight struct {
	index  int
	weight float64
}

// Vector is a sparse term-frequency vector over a Matrix vocabulary.
type Vector struct {
	terms []termWeight
	norm  float64
}

// Matrix holds term-frequency vectors for a set of phrases built over a
// shared vocabulary. Row order matches the phrase order passed to NewMatrix.
type Matrix struct {
	vocab map[string]int
	rows  []Vector
}

// NewMatrix builds vectors for all phrases jointly. The vocabulary is
// assigned in order of first appearance, so the same phrase list always
// produces the same matrix.
func NewMatrix(phrases []string) *Matrix {
	m := &Matrix{
		vocab: make(map[string]int),
		rows:  make([]Vector, len(phrases)),
	}

	for i, phrase := range phrases {
		counts := make(map[int]float64)
		for _, term := range Terms(phrase) {
			index, ok := m.vocab[term]
			if !ok {
				index = len(m.vocab)
				m.vocab[term] = index
			}
			counts[index]++
		}
		m.rows[i] = newVector(counts)
	}

	return m
}

// newVector builds a sorted sparse vector from index counts.
func newVector(counts map[int]float64) Vector {
	terms := make([]termWeight, 0, len(counts))
	maxIndex := -1
	for index := range counts {
		if index > maxIndex {
			maxIndex = index
		}
	}
	// Insertion by ascending index keeps term order independent of map
	// iteration order.
	for index := 0; index <= maxIndex; index++ {
		if weight, ok := counts[index]; ok {
			terms = append(terms, termWeight{index: index, weight: weight})
		}
	}

	var sumSquares float64
	for _, tw := range terms {
		sumSquares += tw.weight * tw.weight
	}

	return Vector{terms: terms, norm: math.Sqrt(sumSquares)}
}

// Len returns the number of rows in the matrix.
func (m *Matrix) Len() int {
	return len(m.rows)
}

// VocabularySize returns the number of distinct terms across all rows.
func (m *Matrix) VocabularySize() int {
	return len(m.vocab)
}

// Cosine returns the cosine similarity between rows i and j, clamped to
// [0,1]. Out-of-range rows and zero vectors resolve to 0.
func (m *Matrix) Cosine(i, j int) float64 {
	if i < 0 || j < 0 || i >= len(m.rows) || j >= len(m.rows) {
		return 0
	}
	return cosine(m.rows[i], m.rows[j])
}

// cosine computes similarity by merging two index-sorted term lists.
func cosine(a, b Vector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}

	var dot float64
	ai, bi := 0, 0
	for ai < len(a.terms) && bi < len(b.terms) {
		switch {
		case a.terms[ai].index == b.terms[bi].index:
			dot += a.terms[ai].weight * b.terms[bi].weight
			ai++
			bi++
		case a.terms[ai].index < b.terms[bi].index:
			ai++
		default:
			bi++
		}
	}

	sim := dot / (a.norm * b.norm)
	// Rounding can push an exact match a hair above 1.
	if sim > 1 {
		sim = 1
	}
	if sim < 0 {
		sim = 0
	}
	return sim
}
