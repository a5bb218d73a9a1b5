package shrink

import "errors"

// Domain errors for input validation. All are raised before any variance
// computation begins; the estimator never returns partial results.
var (
	// ErrEmptyInput indicates a nil or zero-length replicate array.
	ErrEmptyInput = errors.New("shrink: empty input array")

	// ErrNonNumeric indicates a replicate array containing NaN or Inf.
	ErrNonNumeric = errors.New("shrink: non-numeric input (NaN or Inf detected)")

	// ErrShapeMismatch indicates replicate arrays with differing shapes.
	ErrShapeMismatch = errors.New("shrink: replicate array shapes differ")

	// ErrAmbiguousSubjectAxis indicates a rank-1 input whose sole axis was
	// not confirmed as the subject axis via Options.ScalarSubjects.
	ErrAmbiguousSubjectAxis = errors.New("shrink: cannot resolve subject axis for rank-1 input")

	// ErrInsufficientSubjects indicates a subject axis with fewer than two
	// subjects.
	ErrInsufficientSubjects = errors.New("shrink: need at least two subjects")
)
