package synth

import (
	"context"
	"sync"

	"github.com/san-kum/splithalf/internal/shrink"
)

// Ensemble runs a replication study: cohorts drawn with consecutive seeds,
// each decomposed independently.
type Ensemble struct {
	base    Params
	numRuns int
}

func NewEnsemble(base Params, numRuns int) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns}
}

// Run generates and estimates the replicates concurrently. Results are
// ordered by seed offset.
func (e *Ensemble) Run(ctx context.Context, opts shrink.Options) ([]*shrink.Result, error) {
	results := make([]*shrink.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			params := e.base
			params.Seed = e.base.Seed + uint64(idx)

			cohort, err := Generate(params)
			if err != nil {
				errs[idx] = err
				return
			}

			results[idx], errs[idx] = shrink.Estimate(cohort.X1, cohort.X2, cohort.Odd, cohort.Even, opts)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
