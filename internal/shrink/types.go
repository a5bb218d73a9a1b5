package shrink

import "github.com/san-kum/splithalf/internal/narray"

// Options controls estimator behavior.
type Options struct {
	// PoolNoise averages the sampling variance across all parameter
	// positions, collapsing it to a single value. Appropriate when the
	// true sampling variance depends only on the measurement length, not
	// on the specific parameter. Changes the shape of
	// Components.Sampling from parameter-shaped to single-element.
	PoolNoise bool

	// ScalarSubjects confirms that the sole axis of a rank-1 input
	// indexes subjects (one scalar parameter per subject). Without this
	// confirmation rank-1 input fails with ErrAmbiguousSubjectAxis;
	// the axis semantics are never guessed.
	ScalarSubjects bool
}

// DefaultOptions returns the standard estimator configuration: pooled
// sampling variance, no rank-1 confirmation.
func DefaultOptions() Options {
	return Options{PoolNoise: true}
}

// Components holds the variance decomposition, one value per parameter
// position (Sampling is a single-element array when Options.PoolNoise is
// set). All components are clipped to be non-negative and Lambda lies in
// [0,1].
type Components struct {
	Sampling *narray.Dense // measurement noise variance (varU)
	Session  *narray.Dense // intrasession signal variance (varW)
	Within   *narray.Dense // total within-subject variance
	Between  *narray.Dense // between-subject signal variance (varX)
	Total    *narray.Dense // across-subject variance of the estimates
	Lambda   *narray.Dense // shrinkage weight toward the group mean

	// Pooled reports whether Sampling was collapsed to a single value.
	Pooled bool
}

// SamplingAt returns the sampling variance for parameter position j,
// accounting for pooling.
func (c Components) SamplingAt(j int) float64 {
	if c.Pooled {
		return c.Sampling.Data()[0]
	}
	return c.Sampling.Data()[j]
}

// Result is the full output of one estimation call.
type Result struct {
	Shrunk     *narray.Dense // shrinkage estimates, input shape
	Estimate   *narray.Dense // subject-level estimates X = (X1+X2)/2, input shape
	GroupMean  *narray.Dense // across-subject mean of X, parameter shape
	Components Components
	Subjects   int
}
