package kinematics

import (
	"context"
	"runtime"
	"sync"
)

// minBatchChunk keeps small batches on the calling goroutine.
const minBatchChunk = 64

// SolveBatch evaluates one chain under many angle sets. Every set is
// validated before any work starts; the first bad set fails the whole call
// and nothing is returned. Results are in input order.
func SolveBatch(ctx context.Context, lengths []float64, angleSets [][]float64, dim Dimension) ([]Positions, error) {
	if len(lengths) == 0 {
		return nil, ErrEmptyChain
	}
	if !dim.Valid() {
		return nil, ErrUnknownDimension
	}
	for i, angles := range angleSets {
		if err := Validate(lengths, angles); err != nil {
			return nil, &BatchError{Index: i, Wrapped: err}
		}
	}

	out := make([]Positions, len(angleSets))
	ParallelFor(len(angleSets), minBatchChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				return
			}
			out[i] = Positions{Dim: dim, Points: accumulate(lengths, angleSets[i])}
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParallelFor executes fn over [0, n) split into contiguous chunks of at
// least minChunk items, one goroutine per chunk.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if minChunk < 1 {
		minChunk = 1
	}
	workers := runtime.GOMAXPROCS(0)
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
