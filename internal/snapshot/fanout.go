package snapshot

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// runAll runs n tasks with at most limit in flight and waits for every
// one of them. Task errors never cancel siblings; they are returned
// indexed by task. A panicking task is reported as its error.
func runAll(ctx context.Context, limit, n int, task func(ctx context.Context, i int) error) []error {
	errs := make([]error, n)
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("panic: %v", r)
				}
			}()
			errs[i] = task(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
