package term

import (
	"strings"
	"testing"
)

func TestBandFor(t *testing.T) {
	cases := []struct {
		score float64
		want  Band
	}{
		{0.95, BandGood},
		{0.8, BandGood},
		{0.79, BandFair},
		{0.6, BandFair},
		{0.59, BandPoor},
		{0, BandPoor},
	}
	for _, tc := range cases {
		if got := BandFor(tc.score); got != tc.want {
			t.Errorf("score %v: got %s want %s", tc.score, got, tc.want)
		}
	}
}

func TestBarWidthAndFill(t *testing.T) {
	bar := Bar(0.5, 10)
	if !strings.HasPrefix(bar, "[#####-----]") {
		t.Fatalf("unexpected bar: %s", bar)
	}
	if !strings.HasSuffix(bar, "0.500") {
		t.Fatalf("missing score suffix: %s", bar)
	}

	if got := Bar(0, 10); !strings.HasPrefix(got, "[----------]") {
		t.Fatalf("empty bar: %s", got)
	}
	if got := Bar(1, 10); !strings.HasPrefix(got, "[##########]") {
		t.Fatalf("full bar: %s", got)
	}
}

func TestBarClampsOutOfRangeScores(t *testing.T) {
	if got := Bar(1.5, 10); !strings.HasSuffix(got, "1.000") {
		t.Fatalf("expected clamp to 1, got %s", got)
	}
	if got := Bar(-0.2, 10); !strings.HasSuffix(got, "0.000") {
		t.Fatalf("expected clamp to 0, got %s", got)
	}
}

func TestColorize(t *testing.T) {
	if got := Colorize("x", BandGood, false); got != "x" {
		t.Fatalf("disabled colorize altered text: %q", got)
	}
	got := Colorize("x", BandGood, true)
	if !strings.Contains(got, "x") || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("unexpected colored text: %q", got)
	}
	if Colorize("x", BandPoor, true) == Colorize("x", BandGood, true) {
		t.Fatal("bands should use distinct colors")
	}
}
