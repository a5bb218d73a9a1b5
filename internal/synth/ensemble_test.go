package synth

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/splithalf/internal/shrink"
)

func TestEnsembleRun(t *testing.T) {
	p := DefaultParams()
	p.Shape = []int{4, 4}
	p.Subjects = 30

	ens := NewEnsemble(p, 5)
	results, err := ens.Run(context.Background(), shrink.DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}
	for i, res := range results {
		if res == nil {
			t.Fatalf("result %d is nil", i)
		}
		if res.Subjects != p.Subjects {
			t.Errorf("result %d subjects = %d, want %d", i, res.Subjects, p.Subjects)
		}
	}

	// consecutive seeds must produce distinct cohorts
	a := stat.Mean(results[0].Components.Lambda.Data(), nil)
	b := stat.Mean(results[1].Components.Lambda.Data(), nil)
	if a == b {
		t.Error("replicates with different seeds produced identical lambda means")
	}
}

func TestEnsembleSeedOrdering(t *testing.T) {
	p := DefaultParams()
	p.Shape = []int{3}
	p.Subjects = 10
	p.Seed = 7

	ens := NewEnsemble(p, 3)
	results, err := ens.Run(context.Background(), shrink.DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// replicate k must match a standalone run with seed base+k
	for k := 0; k < 3; k++ {
		single := p
		single.Seed = p.Seed + uint64(k)
		cohort, err := Generate(single)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		res, err := shrink.Estimate(cohort.X1, cohort.X2, cohort.Odd, cohort.Even, shrink.DefaultOptions())
		if err != nil {
			t.Fatalf("Estimate: %v", err)
		}
		got := results[k].Components.Lambda.Data()
		want := res.Components.Lambda.Data()
		for j := range want {
			if math.Abs(got[j]-want[j]) > 1e-12 {
				t.Fatalf("replicate %d lambda[%d] = %v, want %v", k, j, got[j], want[j])
			}
		}
	}
}

func TestEnsembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ens := NewEnsemble(DefaultParams(), 2)
	if _, err := ens.Run(ctx, shrink.DefaultOptions()); err == nil {
		t.Error("expected error from cancelled context")
	}
}
