package dist

import (
	"fmt"
	"math"
	"math/rand"

	"motiffind/internal/nuc"
)

// MinPseudoCount keeps Dirichlet posteriors strictly positive so that no
// column ever collapses to a degenerate distribution.
const MinPseudoCount = 1e-6

// Column is a categorical distribution over the four bases.
type Column [nuc.AlphabetSize]float64

// Dirichlet is a pseudo-count vector over the four bases. Every entry must
// stay above MinPseudoCount.
type Dirichlet [nuc.AlphabetSize]float64

func Uniform() Column {
	return Column{0.25, 0.25, 0.25, 0.25}
}

// Sum returns the total probability mass of the column.
func (c Column) Sum() float64 {
	return c[0] + c[1] + c[2] + c[3]
}

// Validate rejects columns that are not probability vectors. Zero entries
// are allowed; ground-truth motifs may rule a base out entirely.
func (c Column) Validate() error {
	for i, v := range c {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("column entry %s must be >= 0, got %v", nuc.Base(i), v)
		}
	}
	if d := math.Abs(c.Sum() - 1); d > 1e-9 {
		return fmt.Errorf("column mass must sum to 1, off by %g", d)
	}
	return nil
}

// ValidateStrict additionally rejects zero entries. Distributions that enter
// log-likelihood computations (the background model, inferred columns) must
// be strictly positive.
func (c Column) ValidateStrict() error {
	if err := c.Validate(); err != nil {
		return err
	}
	for i, v := range c {
		if v == 0 {
			return fmt.Errorf("column entry %s must be > 0", nuc.Base(i))
		}
	}
	return nil
}

// Log returns the column with every entry replaced by its natural log.
func (c Column) Log() Column {
	var out Column
	for i, v := range c {
		out[i] = math.Log(v)
	}
	return out
}

// ArgMax returns the most probable base, breaking ties toward the lower
// index so results are deterministic.
func (c Column) ArgMax() nuc.Base {
	best := 0
	for i := 1; i < nuc.AlphabetSize; i++ {
		if c[i] > c[best] {
			best = i
		}
	}
	return nuc.Base(best)
}

// Mean returns the normalized pseudo-counts, the posterior-mean categorical
// distribution of the Dirichlet.
func (d Dirichlet) Mean() Column {
	total := 0.0
	for i, v := range d {
		if v < MinPseudoCount {
			d[i] = MinPseudoCount
			v = MinPseudoCount
		}
		total += v
	}
	if total <= 0 || math.IsNaN(total) {
		// Structurally unreachable given the pseudo-count floor.
		panic("dist: degenerate dirichlet with non-positive mass")
	}
	var out Column
	for i, v := range d {
		out[i] = v / total
	}
	return out
}

// SampleColumn draws a categorical distribution from a symmetric
// Dirichlet(alpha, alpha, alpha, alpha) via normalized gamma variates.
func SampleColumn(rng *rand.Rand, alpha float64) Column {
	var d Dirichlet
	for i := range d {
		g := sampleGamma(rng, alpha)
		if g < MinPseudoCount {
			g = MinPseudoCount
		}
		d[i] = g
	}
	return d.Mean()
}

// sampleGamma draws from Gamma(shape, 1) using Marsaglia-Tsang, with the
// standard boost for shape < 1.
func sampleGamma(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		return sampleGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1 / (3 * math.Sqrt(d))
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if u > 0 && math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// LogSumExp computes log(sum(exp(xs))) without underflow. Entries equal to
// -Inf contribute nothing; an all -Inf input returns -Inf.
func LogSumExp(xs []float64) float64 {
	max := math.Inf(-1)
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	if math.IsInf(max, -1) {
		return max
	}
	sum := 0.0
	for _, x := range xs {
		sum += math.Exp(x - max)
	}
	return max + math.Log(sum)
}
