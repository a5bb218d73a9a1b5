package synth

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/splithalf/internal/shrink"
)

func TestGenerateShapes(t *testing.T) {
	p := DefaultParams()
	p.Shape = []int{4, 5}
	p.Subjects = 7

	c, err := Generate(p)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	want := []int{4, 5, 7}
	for _, a := range []interface{ Shape() []int }{c.X1, c.X2, c.Odd, c.Even} {
		got := a.Shape()
		if len(got) != len(want) {
			t.Fatalf("expected shape %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected shape %v, got %v", want, got)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultParams()
	p.Seed = 42

	a, err := Generate(p)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	b, err := Generate(p)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for i, v := range a.X1.Data() {
		if b.X1.Data()[i] != v {
			t.Fatalf("same seed produced different cohorts at %d", i)
		}
	}

	p.Seed = 43
	c, err := Generate(p)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	same := true
	for i, v := range a.X1.Data() {
		if c.X1.Data()[i] != v {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical cohorts")
	}
}

func TestGenerateBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"one subject", func(p *Params) { p.Subjects = 1 }},
		{"no shape", func(p *Params) { p.Shape = nil }},
		{"zero dim", func(p *Params) { p.Shape = []int{3, 0} }},
		{"negative sd", func(p *Params) { p.NoiseSD = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if _, err := Generate(p); !errors.Is(err, ErrBadParams) {
				t.Errorf("expected ErrBadParams, got %v", err)
			}
		})
	}
}

// With a large cohort the estimator should recover the generating variance
// components to within sampling error.
func TestGenerateEstimatorRecovery(t *testing.T) {
	p := Params{
		Shape:      []int{12, 12},
		Subjects:   200,
		MeanSpread: 1.0,
		BetweenSD:  0.6,
		SessionSD:  0.4,
		NoiseSD:    0.3,
		Seed:       7,
	}

	c, err := Generate(p)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	res, err := shrink.Estimate(c.X1, c.X2, c.Odd, c.Even, shrink.DefaultOptions())
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}

	meanOf := func(vals []float64) float64 {
		s := 0.0
		for _, v := range vals {
			s += v
		}
		return s / float64(len(vals))
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"sampling", res.Components.Sampling.Data()[0], c.Truth.Sampling},
		{"session", meanOf(res.Components.Session.Data()), c.Truth.Session},
		{"between", meanOf(res.Components.Between.Data()), c.Truth.Between},
		{"lambda", meanOf(res.Components.Lambda.Data()), c.Truth.Lambda},
	}

	for _, ck := range checks {
		rel := math.Abs(ck.got-ck.want) / math.Max(ck.want, 1e-9)
		if rel > 0.15 {
			t.Errorf("%s: expected ~%v, got %v (rel err %.2f)", ck.name, ck.want, ck.got, rel)
		}
	}
}
