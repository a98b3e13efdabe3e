package fmm

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// parallelFor runs fn(0), fn(1), ..., fn(n-1) across a bounded pool of
// goroutines, returning the first error encountered. Callers must ensure
// fn's iterations touch disjoint memory; parallelFor itself performs no synchronization
// beyond bounding concurrency and propagating the first error.
func parallelFor(n int, fn func(i int) error) error {
	if n == 0 {
		return nil
	}
	ctx := context.Background()
	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))
	for i := 0; i < n; i++ {
		i := i
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			return fn(i)
		})
	}
	return g.Wait()
}
