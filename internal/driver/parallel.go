package driver

import (
	"context"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// forEachFile runs fn for every file with at most jobs goroutines.
// Each call gets its own index, so fn may write results[i] without locking.
func forEachFile(ctx context.Context, files []string, jobs int, fn func(ctx context.Context, i int, path string) error) error {
	if len(files) == 0 {
		return nil
	}
	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i, path)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// errgroup returns nil when only the parent was cancelled after all
	// workers had started; report that too.
	return ctx.Err()
}

// Сортируем для детерминированного порядка
func sortResults(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		return strings.Compare(a.Path, b.Path)
	})
}
