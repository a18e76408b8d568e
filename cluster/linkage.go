package cluster

import "gonum.org/v1/gonum/mat"

// agglomerate runs average-linkage hierarchical clustering over a
// precomputed distance matrix, merging until k groups remain. Each group is
// an ascending list of node indices.
//
// Merge selection is deterministic: pairs are scanned in (i,j) index order
// and only a strictly smaller linkage replaces the current best, so equal
// distances always merge the lowest-indexed pair first.
func agglomerate(n, k int, distances *mat.SymDense) [][]int {
	groups := make([][]int, n)
	for i := range groups {
		groups[i] = []int{i}
	}

	for len(groups) > k {
		bestA, bestB := -1, -1
		var bestLinkage float64

		for a := 0; a < len(groups); a++ {
			for b := a + 1; b < len(groups); b++ {
				linkage := averageLinkage(groups[a], groups[b], distances)
				if bestA < 0 || linkage < bestLinkage {
					bestA, bestB = a, b
					bestLinkage = linkage
				}
			}
		}

		merged := merge(groups[bestA], groups[bestB])
		groups[bestA] = merged
		groups = append(groups[:bestB], groups[bestB+1:]...)
	}

	return groups
}

// averageLinkage is the mean pairwise distance between two groups. The sum
// visits members in ascending index order, keeping the floating-point result
// reproducible.
func averageLinkage(a, b []int, distances *mat.SymDense) float64 {
	var sum float64
	for _, i := range a {
		for _, j := range b {
			sum += distances.At(i, j)
		}
	}
	return sum / float64(len(a)*len(b))
}

// merge combines two ascending index lists into one.
func merge(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		if a[ai] < b[bi] {
			out = append(out, a[ai])
			ai++
		} else {
			out = append(out, b[bi])
			bi++
		}
	}
	out = append(out, a[ai:]...)
	out = append(out, b[bi:]...)
	return out
}
