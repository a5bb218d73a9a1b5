package shrink

import (
	"errors"
	"math"
	"testing"
)

func TestValidateEmptyInput(t *testing.T) {
	a := arr(t, []int{2, 2}, []float64{1, 2, 3, 4})

	_, err := Estimate(a, nil, a.Clone(), a.Clone(), DefaultOptions())
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestValidateNonNumeric(t *testing.T) {
	a := arr(t, []int{2, 2}, []float64{1, 2, 3, 4})
	bad := arr(t, []int{2, 2}, []float64{1, math.NaN(), 3, 4})

	_, err := Estimate(a, a.Clone(), bad, a.Clone(), DefaultOptions())
	if !errors.Is(err, ErrNonNumeric) {
		t.Errorf("expected ErrNonNumeric, got %v", err)
	}

	inf := arr(t, []int{2, 2}, []float64{1, 2, math.Inf(1), 4})
	_, err = Estimate(a, a.Clone(), a.Clone(), inf, DefaultOptions())
	if !errors.Is(err, ErrNonNumeric) {
		t.Errorf("expected ErrNonNumeric for Inf, got %v", err)
	}
}

func TestValidateShapeMismatch(t *testing.T) {
	a := arr(t, []int{2, 2}, []float64{1, 2, 3, 4})
	b := arr(t, []int{4}, []float64{1, 2, 3, 4})

	_, err := Estimate(a, b, a.Clone(), a.Clone(), DefaultOptions())
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestValidateAmbiguousSubjectAxis(t *testing.T) {
	a := arr(t, []int{3}, []float64{1, 2, 3})

	// Rank-1 without confirmation must fail rather than guess.
	_, err := Estimate(a, a.Clone(), a.Clone(), a.Clone(), Options{PoolNoise: true})
	if !errors.Is(err, ErrAmbiguousSubjectAxis) {
		t.Errorf("expected ErrAmbiguousSubjectAxis, got %v", err)
	}

	// Confirmation resolves the same input.
	if _, err := Estimate(a, a.Clone(), a.Clone(), a.Clone(), scalarOpts()); err != nil {
		t.Errorf("confirmed rank-1 input failed: %v", err)
	}
}

func TestValidateInsufficientSubjects(t *testing.T) {
	// Rank-2 with a single subject on the trailing axis.
	a := arr(t, []int{3, 1}, []float64{1, 2, 3})
	_, err := Estimate(a, a.Clone(), a.Clone(), a.Clone(), DefaultOptions())
	if !errors.Is(err, ErrInsufficientSubjects) {
		t.Errorf("expected ErrInsufficientSubjects, got %v", err)
	}

	// Rank-1 with a confirmed single subject.
	s := arr(t, []int{1}, []float64{1})
	_, err = Estimate(s, s.Clone(), s.Clone(), s.Clone(), scalarOpts())
	if !errors.Is(err, ErrInsufficientSubjects) {
		t.Errorf("expected ErrInsufficientSubjects for confirmed singleton, got %v", err)
	}
}

func TestValidateBeforeComputation(t *testing.T) {
	// A failing input pairs a valid array with a mismatched one; no
	// partial result may come back.
	a := arr(t, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	b := arr(t, []int{3, 2}, []float64{1, 2, 3, 4, 5, 6})

	res, err := Estimate(a, a.Clone(), a.Clone(), b, DefaultOptions())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if res != nil {
		t.Error("expected nil result on validation failure")
	}
}
