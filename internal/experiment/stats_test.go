package experiment

import (
	"math"
	"testing"
)

func TestMeanStd(t *testing.T) {
	mean, std := MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(mean-5) > 1e-12 {
		t.Fatalf("mean %v", mean)
	}
	if math.Abs(std-2) > 1e-12 {
		t.Fatalf("std %v", std)
	}
}

func TestMeanStdEmpty(t *testing.T) {
	mean, std := MeanStd(nil)
	if mean != 0 || std != 0 {
		t.Fatalf("got %v %v", mean, std)
	}
}

func TestMinMax(t *testing.T) {
	min, max := MinMax([]float64{0.4, 0.1, 0.9, 0.5})
	if min != 0.1 || max != 0.9 {
		t.Fatalf("got %v %v", min, max)
	}
}
