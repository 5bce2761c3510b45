package eval

import (
	"errors"
	"math"
	"testing"

	"motiffind/internal/dist"
	"motiffind/internal/genmodel"
)

func TestConsensus(t *testing.T) {
	p := dist.PFM{
		{0.7, 0.1, 0.1, 0.1},
		{0.1, 0.7, 0.1, 0.1},
		{0.1, 0.1, 0.7, 0.1},
		{0.1, 0.1, 0.1, 0.7},
	}
	if got := Consensus(p); got != "ACGT" {
		t.Fatalf("consensus %s", got)
	}
}

func TestConsensusBreaksTiesTowardLowerIndex(t *testing.T) {
	p := dist.PFM{{0.25, 0.25, 0.25, 0.25}}
	if got := Consensus(p); got != "A" {
		t.Fatalf("tie consensus %s, want A", got)
	}
}

func TestScorePerfectMatch(t *testing.T) {
	truth := dist.PFM{
		{0.9, 0.05, 0.025, 0.025},
		{0.05, 0.9, 0.025, 0.025},
	}
	inferred := dist.PFM{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
	}
	got, err := Score(inferred, truth, DefaultDominanceThreshold)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if math.Abs(got-1) > 1e-12 {
		t.Fatalf("score %v, want 1", got)
	}
}

func TestScoreCountsDominantSet(t *testing.T) {
	// Both G and T dominate the truth column; inferred mass on either side
	// of the split counts in full.
	truth := dist.PFM{{0, 0, 0.5, 0.5}}
	inferred := dist.PFM{{0.1, 0.1, 0.7, 0.1}}
	got, err := Score(inferred, truth, DefaultDominanceThreshold)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if math.Abs(got-0.8) > 1e-12 {
		t.Fatalf("score %v, want 0.8", got)
	}
}

func TestScoreFallsBackToArgMaxWhenNothingDominates(t *testing.T) {
	truth := dist.PFM{{0.3, 0.25, 0.25, 0.2}}
	inferred := dist.PFM{{0.6, 0.2, 0.1, 0.1}}
	got, err := Score(inferred, truth, 0.4)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if math.Abs(got-0.6) > 1e-12 {
		t.Fatalf("score %v, want 0.6", got)
	}
}

func TestScoreThresholdIsTunable(t *testing.T) {
	truth := dist.PFM{{0.45, 0.35, 0.1, 0.1}}
	inferred := dist.PFM{{0.5, 0.3, 0.1, 0.1}}

	// At 0.4 only A dominates; at 0.3 both A and C do.
	narrow, err := Score(inferred, truth, 0.4)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	wide, err := Score(inferred, truth, 0.3)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if math.Abs(narrow-0.5) > 1e-12 {
		t.Fatalf("narrow score %v, want 0.5", narrow)
	}
	if math.Abs(wide-0.8) > 1e-12 {
		t.Fatalf("wide score %v, want 0.8", wide)
	}
}

func TestScoreRejections(t *testing.T) {
	one := dist.PFM{dist.Uniform()}
	two := dist.PFM{dist.Uniform(), dist.Uniform()}

	cases := []struct {
		name      string
		inferred  dist.PFM
		truth     dist.PFM
		threshold float64
	}{
		{"length mismatch", one, two, 0.4},
		{"empty matrices", dist.PFM{}, dist.PFM{}, 0.4},
		{"zero threshold", one, one, 0},
		{"threshold above one", one, one, 1.5},
	}
	for _, tc := range cases {
		_, err := Score(tc.inferred, tc.truth, tc.threshold)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !errors.Is(err, genmodel.ErrInvalidConfig) {
			t.Errorf("%s: error %v is not ErrInvalidConfig", tc.name, err)
		}
	}
}
