// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Process runs process for every item with at most workerCount calls in flight.
// The first error cancels the context handed to the remaining calls, stops
// scheduling new items and is returned once all running calls have finished.
func Process[T any](ctx context.Context, workerCount int, items []T, process func(context.Context, T) error) error {
	if workerCount < 1 {
		workerCount = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return process(gctx, item)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
