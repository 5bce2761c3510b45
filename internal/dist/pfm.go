package dist

import (
	"fmt"
	"math"
	"math/rand"
)

// PFM is a position frequency matrix: one categorical column per motif
// offset.
type PFM []Column

func (p PFM) Clone() PFM {
	out := make(PFM, len(p))
	copy(out, p)
	return out
}

func (p PFM) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("pfm must have at least one column")
	}
	for i, col := range p {
		if err := col.Validate(); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

// L1Distance sums absolute per-entry differences over all columns. Panics on
// length mismatch; callers compare successive estimates of the same motif.
func (p PFM) L1Distance(q PFM) float64 {
	if len(p) != len(q) {
		panic("dist: pfm length mismatch")
	}
	total := 0.0
	for i := range p {
		for j := range p[i] {
			total += math.Abs(p[i][j] - q[i][j])
		}
	}
	return total
}

// Log returns the PFM with every column entry replaced by its natural log.
func (p PFM) Log() PFM {
	out := make(PFM, len(p))
	for i, col := range p {
		out[i] = col.Log()
	}
	return out
}

// SamplePFM draws an initial motif matrix of the given length, one
// independent Dirichlet(alpha) column per offset.
func SamplePFM(rng *rand.Rand, length int, alpha float64) PFM {
	out := make(PFM, length)
	for i := range out {
		out[i] = SampleColumn(rng, alpha)
	}
	return out
}

// FromRows builds a PFM from plain float rows, validating each column.
func FromRows(rows [][]float64) (PFM, error) {
	out := make(PFM, len(rows))
	for i, row := range rows {
		if len(row) != len(out[i]) {
			return nil, fmt.Errorf("column %d: want %d entries, got %d", i, len(out[i]), len(row))
		}
		copy(out[i][:], row)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Rows converts a PFM back to plain float rows for serialization.
func (p PFM) Rows() [][]float64 {
	out := make([][]float64, len(p))
	for i, col := range p {
		row := make([]float64, len(col))
		copy(row, col[:])
		out[i] = row
	}
	return out
}
