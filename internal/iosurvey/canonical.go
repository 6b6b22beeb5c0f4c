package iosurvey

import (
	"context"
	"sync"

	"github.com/vegdata/vegmat/pkg/parserpool"
	"github.com/vegdata/vegmat/pkg/survey"
	"golang.org/x/sync/errgroup"
)

// canonicalize rewrites species labels to their canonical scientific
// form. A survey repeats the same handful of names over thousands of
// rows, so only the distinct labels go through the parser; unparseable
// labels stay verbatim. The report counts rewritten observations.
func canonicalize(
	ctx context.Context,
	obs []survey.Observation,
	report *survey.ReadReport,
	jobs int,
) error {
	if jobs < 1 {
		jobs = 1
	}

	distinct := make(map[string]bool)
	for i := range obs {
		distinct[obs[i].Species] = true
	}

	pool := parserpool.NewPool(jobs)
	defer pool.Close()

	names := make(chan string)
	var mu sync.Mutex
	canon := make(map[string]string, len(distinct))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(names)
		for name := range distinct {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case names <- name:
			}
		}
		return nil
	})
	for i := 0; i < jobs; i++ {
		g.Go(func() error {
			for name := range names {
				c, ok := pool.Canonical(name)
				if !ok || c == name {
					continue
				}
				mu.Lock()
				canon[name] = c
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range obs {
		if c, ok := canon[obs[i].Species]; ok {
			obs[i].Species = c
			report.Canonical++
		}
	}
	return nil
}
