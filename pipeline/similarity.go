package pipeline

import (
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/phrasemap/cluster"
	"github.com/poiesic/phrasemap/lexical"
)

// similarityTable precomputes the pairwise cosine table over the node-only
// matrix and returns a lookup into it. With a pool size above one, rows are
// computed on an ants worker pool; every cell is an independent cosine over
// immutable vectors, so worker scheduling cannot change any value and the
// table is bit-identical to the sequential one.
func (p *Pipeline) similarityTable(matrix *lexical.Matrix, n int) cluster.Similarity {
	table := make([][]float64, n)
	for i := range table {
		table[i] = make([]float64, n)
	}

	fillRow := func(i int) {
		for j := i + 1; j < n; j++ {
			table[i][j] = matrix.Cosine(i, j)
		}
	}

	if p.poolSize > 1 && n > 1 {
		pool, err := ants.NewPool(p.poolSize)
		if err != nil {
			p.logger.Warn("worker pool unavailable, computing similarities sequentially", "err", err)
			for i := range n {
				fillRow(i)
			}
		} else {
			defer pool.Release()
			var wg sync.WaitGroup
			for i := range n {
				wg.Add(1)
				row := i
				if err := pool.Submit(func() {
					defer wg.Done()
					fillRow(row)
				}); err != nil {
					// submit only fails on a released pool; fall back inline
					fillRow(row)
					wg.Done()
				}
			}
			wg.Wait()
		}
	} else {
		for i := range n {
			fillRow(i)
		}
	}

	return func(i, j int) float64 {
		if i == j {
			return 1
		}
		if i > j {
			i, j = j, i
		}
		if i < 0 || j >= n {
			return 0
		}
		return table[i][j]
	}
}
