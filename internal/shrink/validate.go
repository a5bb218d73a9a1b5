package shrink

import (
	"fmt"

	"github.com/san-kum/splithalf/internal/narray"
)

// replicate names for error messages, in argument order.
var replicateNames = [4]string{"x1", "x2", "odd", "even"}

// validateInputs checks the four replicate arrays and resolves the subject
// axis. It returns the subject count. All failures happen here, before any
// variance computation.
func validateInputs(x1, x2, odd, even *narray.Dense, opts Options) (int, error) {
	arrays := [4]*narray.Dense{x1, x2, odd, even}

	for i, a := range arrays {
		if a == nil || a.Len() == 0 {
			return 0, fmt.Errorf("%w: %s", ErrEmptyInput, replicateNames[i])
		}
		if a.HasNonFinite() {
			return 0, fmt.Errorf("%w: %s", ErrNonNumeric, replicateNames[i])
		}
	}

	for i := 1; i < len(arrays); i++ {
		if !x1.SameShape(arrays[i]) {
			return 0, fmt.Errorf("%w: x1 %v vs %s %v",
				ErrShapeMismatch, x1.Shape(), replicateNames[i], arrays[i].Shape())
		}
	}

	// Rank >= 2: the subject axis is unambiguously the last axis. Rank 1
	// is ambiguous between "n subjects of one scalar parameter" and "one
	// subject"; require the caller's explicit confirmation.
	if x1.Rank() == 1 && !opts.ScalarSubjects {
		return 0, fmt.Errorf("%w: sole axis has %d entries; set Options.ScalarSubjects to treat them as subjects",
			ErrAmbiguousSubjectAxis, x1.Len())
	}

	n := x1.Subjects()
	if n < 2 {
		return 0, fmt.Errorf("%w: subject axis has size %d", ErrInsufficientSubjects, n)
	}

	return n, nil
}
