package nabo

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// BatchOptions controls KnnBatch.
type BatchOptions struct {
	// Workers is the number of goroutines answering queries. 0 means
	// runtime.NumCPU(); 1 runs every query on the calling goroutine.
	Workers int

	// Logger receives one debug record per batch. nil discards it.
	Logger *slog.Logger
}

// KnnBatch runs Knn for every column of queries and returns the results in
// column order. queries must have idx.Dim() rows.
//
// Arguments are checked before any query runs, so an invalid call leaves
// the index statistics untouched. Each query is recorded in the statistics
// as it finishes. Cancelling ctx stops workers before their next query and
// KnnBatch returns the context error; queries already answered stay
// recorded.
func KnnBatch(ctx context.Context, idx Index, queries mat.Matrix, k int, allowSelfMatch bool, opts BatchOptions) ([][]int, error) {
	if queries == nil {
		return nil, &DimensionMismatchError{Expected: idx.Dim(), Actual: 0}
	}
	rows, m := queries.Dims()
	if rows != idx.Dim() {
		return nil, &DimensionMismatchError{Expected: idx.Dim(), Actual: rows}
	}
	if k < 1 {
		return nil, invalidK(k)
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = max(min(numWorkers, m), 1)
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	results := make([][]int, m)
	answer := func(ctx context.Context, start, end int) error {
		buf := make([]float64, rows)
		query := mat.NewVecDense(rows, buf)
		for j := start; j < end; j++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			mat.Col(buf, j, queries)
			res, err := idx.Knn(query, k, allowSelfMatch)
			if err != nil {
				return err
			}
			results[j] = res
		}
		return nil
	}

	if numWorkers == 1 {
		if err := answer(ctx, 0, m); err != nil {
			return nil, err
		}
	} else {
		// Split columns across workers. Ranges don't overlap, so no
		// synchronization is needed for writes to results.
		g, gctx := errgroup.WithContext(ctx)
		colsPerWorker := (m + numWorkers - 1) / numWorkers
		for start := 0; start < m; start += colsPerWorker {
			end := min(start+colsPerWorker, m)
			g.Go(func() error { return answer(gctx, start, end) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	logger.Debug("knn batch completed",
		"queries", m,
		"k", k,
		"workers", numWorkers,
	)
	return results, nil
}
