package extract

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/stencil/internal/extraction"
)

// ProgressFunc is called once per finished file, from any goroutine.
type ProgressFunc func(result Result)

// ExtractAll extracts every path in parallel and returns results in input
// order. Per-file failures are reported in Result.Err; only cancellation
// aborts the batch.
func (s *Service) ExtractAll(ctx context.Context, paths []string, opts extraction.Options, onDone ProgressFunc) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.ExtractFile(path, opts)
			if onDone != nil {
				onDone(results[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
