package shrink

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/splithalf/internal/narray"
)

// combine averages the subject-level estimates into the group mean and
// blends every subject toward it:
//
//	shrunk[j,i] = lambda[j]*mean[j] + (1-lambda[j])*x[j,i]
//
// The group mean and lambda are broadcast over the subject axis, so the
// result keeps the full input shape. Each output value is a convex
// combination: lambda == 0 returns the subject's own estimate exactly,
// lambda == 1 returns the group mean for every subject.
func combine(x *narray.Dense, lambda *narray.Dense) (mean, shrunk *narray.Dense, err error) {
	p := x.Params()
	n := x.Subjects()

	means := make([]float64, p)
	for j := 0; j < p; j++ {
		means[j] = stat.Mean(x.SubjectSlice(j), nil)
	}

	mean, err = narray.FromSlice(x.ParamShape(), means)
	if err != nil {
		return nil, nil, err
	}

	shrunk = x.Clone()
	lam := lambda.Data()
	out := shrunk.Data()
	for j := 0; j < p; j++ {
		l := lam[j]
		m := means[j]
		base := j * n
		for i := 0; i < n; i++ {
			out[base+i] = l*m + (1-l)*out[base+i]
		}
	}

	return mean, shrunk, nil
}
