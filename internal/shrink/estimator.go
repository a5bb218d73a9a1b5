package shrink

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/splithalf/internal/narray"
)

// Estimate runs the full pipeline: validate the four replicate arrays,
// decompose the across-subject variance into sampling, intrasession and
// between-subject components, and shrink every subject-level estimate toward
// the group mean with the resulting per-parameter weight.
//
// x1/x2 are the half-length split estimates, odd/even the orthogonal
// odd/even split estimates. All four must share the shape (p1,...,pk,n)
// with at least two subjects on the trailing axis. Inputs are never
// mutated.
func Estimate(x1, x2, odd, even *narray.Dense, opts Options) (*Result, error) {
	n, err := validateInputs(x1, x2, odd, even, opts)
	if err != nil {
		return nil, err
	}

	// Subject-level estimate X = (X1 + X2) / 2.
	sum, err := narray.Add(x1, x2)
	if err != nil {
		return nil, err
	}
	x, err := narray.Scale(sum, 0.5)
	if err != nil {
		return nil, err
	}

	// Replicate differences. Xodd - Xeven isolates pure measurement
	// noise; X2 - X1 mixes noise with intrasession signal instability.
	dNoise, err := narray.Sub(odd, even)
	if err != nil {
		return nil, err
	}
	dSession, err := narray.Sub(x2, x1)
	if err != nil {
		return nil, err
	}

	comp, err := decompose(x, dNoise, dSession, opts)
	if err != nil {
		return nil, err
	}

	mean, shrunk, err := combine(x, comp.Lambda)
	if err != nil {
		return nil, err
	}

	return &Result{
		Shrunk:     shrunk,
		Estimate:   x,
		GroupMean:  mean,
		Components: comp,
		Subjects:   n,
	}, nil
}

// decompose computes the variance components and the shrinkage weight, one
// value per parameter position (reduced over the contiguous subject
// slices). Across-subject variances use the sample (n-1) denominator
// throughout; the lambda ratio and the clipping rules are unaffected by
// this consistent choice.
func decompose(x, dNoise, dSession *narray.Dense, opts Options) (Components, error) {
	p := x.Params()
	paramShape := x.ParamShape()

	// Sampling variance per parameter: Var(Xodd - Xeven)/4. The halves
	// carry two independent noise draws at half measurement length,
	// which this scaling folds back to a single full-length measurement
	// (equal-duration splits assumed).
	sampling := make([]float64, p)
	for j := 0; j < p; j++ {
		sampling[j] = stat.Variance(dNoise.SubjectSlice(j), nil) / 4
	}

	// Optionally pool the noise estimate over all parameters.
	var pooledU float64
	if opts.PoolNoise {
		pooledU = stat.Mean(sampling, nil)
	}
	samplingAt := func(j int) float64 {
		if opts.PoolNoise {
			return pooledU
		}
		return sampling[j]
	}

	session := make([]float64, p)
	within := make([]float64, p)
	total := make([]float64, p)
	between := make([]float64, p)
	lambda := make([]float64, p)

	for j := 0; j < p; j++ {
		varU := samplingAt(j)

		// Var(X2 - X1) mixes noise and session instability; subtract
		// the noise portion to isolate the latter.
		varSR := stat.Variance(dSession.SubjectSlice(j), nil)
		sessionRaw := (varSR - 4*varU) / 4

		// Negative raw estimates are finite-sample artifacts, not
		// meaningful variances. The within total clips the raw sum so
		// a strongly negative session estimate can still cancel the
		// noise term, matching the decomposition identity.
		within[j] = clipZero(sessionRaw + varU)
		session[j] = clipZero(sessionRaw)

		total[j] = stat.Variance(x.SubjectSlice(j), nil)
		between[j] = clipZero(total[j] - within[j])

		// A constant parameter (varTOT == 0, e.g. a matrix diagonal)
		// has nothing to shrink; force lambda to 0 instead of
		// dividing by zero.
		if total[j] == 0 {
			lambda[j] = 0
			continue
		}
		lambda[j] = clipUnit(within[j] / total[j])
	}

	comp := Components{Pooled: opts.PoolNoise}
	var err error
	if opts.PoolNoise {
		comp.Sampling, err = narray.FromSlice([]int{1}, []float64{pooledU})
	} else {
		comp.Sampling, err = narray.FromSlice(paramShape, sampling)
	}
	if err != nil {
		return Components{}, err
	}
	if comp.Session, err = narray.FromSlice(paramShape, session); err != nil {
		return Components{}, err
	}
	if comp.Within, err = narray.FromSlice(paramShape, within); err != nil {
		return Components{}, err
	}
	if comp.Between, err = narray.FromSlice(paramShape, between); err != nil {
		return Components{}, err
	}
	if comp.Total, err = narray.FromSlice(paramShape, total); err != nil {
		return Components{}, err
	}
	if comp.Lambda, err = narray.FromSlice(paramShape, lambda); err != nil {
		return Components{}, err
	}
	return comp, nil
}

func clipZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clipUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
