// Package synth generates synthetic split-half cohorts with known variance
// components, used by the simulate command and for estimator validation.
package synth

import (
	"errors"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/splithalf/internal/narray"
)

// Domain errors for cohort generation.
var (
	// ErrBadParams indicates an invalid generator configuration.
	ErrBadParams = errors.New("synth: invalid generator parameters")
)

// Params configures a synthetic cohort. All standard deviations refer to a
// full-length measurement; half-length splits receive noise inflated by
// sqrt(2) so the split-half scaling of the estimator applies unchanged.
type Params struct {
	Shape      []int   // parameter axes, e.g. [8, 8] for an 8x8 matrix
	Subjects   int     // cohort size, >= 2
	MeanSpread float64 // spread of per-parameter population means
	BetweenSD  float64 // between-subject spread of the true values
	SessionSD  float64 // per-session signal drift
	NoiseSD    float64 // full-length measurement noise
	Seed       uint64
}

// DefaultParams returns a small matrix-valued cohort with visible shrinkage.
func DefaultParams() Params {
	return Params{
		Shape:      []int{8, 8},
		Subjects:   20,
		MeanSpread: 1.0,
		BetweenSD:  0.5,
		SessionSD:  0.3,
		NoiseSD:    0.4,
		Seed:       1,
	}
}

// Truth holds the population values of the variance components implied by
// Params, identical for every parameter position.
//
// Under the generative model X_split = theta + w_split + u_split the
// estimator's session component recovers half the per-session drift
// variance (the halves average two independent drifts), hence the /2.
type Truth struct {
	Sampling float64
	Session  float64
	Within   float64
	Between  float64
	Total    float64
	Lambda   float64
}

// Cohort is a generated set of replicate arrays plus the ground truth that
// produced it.
type Cohort struct {
	X1, X2    *narray.Dense // half-length split estimates
	Odd, Even *narray.Dense // odd/even split estimates
	Truth     Truth
}

// Generate draws a cohort from the hierarchical model
//
//	mu_j      ~ N(0, MeanSpread)          per parameter
//	theta_ij  ~ N(mu_j, BetweenSD)        per subject
//	w_session ~ N(0, SessionSD)           per subject and half session
//	u_split   ~ N(0, sqrt(2)*NoiseSD)     per subject and split
//
// with X1 = theta + w1 + u, X2 = theta + w2 + u and the odd/even splits
// sharing the averaged session drift (w1+w2)/2 but carrying independent
// noise draws.
func Generate(p Params) (*Cohort, error) {
	if p.Subjects < 2 || len(p.Shape) == 0 {
		return nil, ErrBadParams
	}
	for _, dim := range p.Shape {
		if dim <= 0 {
			return nil, ErrBadParams
		}
	}
	if p.MeanSpread < 0 || p.BetweenSD < 0 || p.SessionSD < 0 || p.NoiseSD < 0 {
		return nil, ErrBadParams
	}

	unit := distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15),
	}

	shape := append(append([]int(nil), p.Shape...), p.Subjects)
	x1, err := narray.New(shape...)
	if err != nil {
		return nil, err
	}
	x2, _ := narray.New(shape...)
	odd, _ := narray.New(shape...)
	even, _ := narray.New(shape...)

	params := x1.Params()
	n := p.Subjects
	halfNoise := math.Sqrt2 * p.NoiseSD

	for j := 0; j < params; j++ {
		mu := p.MeanSpread * unit.Rand()
		for i := 0; i < n; i++ {
			theta := mu + p.BetweenSD*unit.Rand()
			w1 := p.SessionSD * unit.Rand()
			w2 := p.SessionSD * unit.Rand()
			wBar := (w1 + w2) / 2

			idx := j*n + i
			x1.Data()[idx] = theta + w1 + halfNoise*unit.Rand()
			x2.Data()[idx] = theta + w2 + halfNoise*unit.Rand()
			odd.Data()[idx] = theta + wBar + halfNoise*unit.Rand()
			even.Data()[idx] = theta + wBar + halfNoise*unit.Rand()
		}
	}

	return &Cohort{
		X1:    x1,
		X2:    x2,
		Odd:   odd,
		Even:  even,
		Truth: truthOf(p),
	}, nil
}

func truthOf(p Params) Truth {
	t := Truth{
		Sampling: p.NoiseSD * p.NoiseSD,
		Session:  p.SessionSD * p.SessionSD / 2,
		Between:  p.BetweenSD * p.BetweenSD,
	}
	t.Within = t.Session + t.Sampling
	t.Total = t.Within + t.Between
	if t.Total > 0 {
		t.Lambda = t.Within / t.Total
	}
	return t
}
