// Package eval compares an inferred motif matrix against a known
// ground-truth matrix and derives the consensus string. Pure functions, no
// state.
package eval

import (
	"fmt"
	"strings"

	"motiffind/internal/dist"
	"motiffind/internal/genmodel"
)

// DefaultDominanceThreshold is the truth-column probability above which a
// base counts as dominant for scoring. Tunable per experiment.
const DefaultDominanceThreshold = 0.4

// Consensus returns the most probable base per column.
func Consensus(p dist.PFM) string {
	var b strings.Builder
	for _, col := range p {
		b.WriteByte(col.ArgMax().Byte())
	}
	return b.String()
}

// Score measures how much inferred probability mass lands on the bases that
// dominate each ground-truth column, averaged over columns. A truth column
// with no base at or above the threshold falls back to its single most
// probable base. The result is in [0, 1].
func Score(inferred, truth dist.PFM, threshold float64) (float64, error) {
	if len(inferred) != len(truth) {
		return 0, fmt.Errorf("%w: inferred matrix has %d columns, truth has %d",
			genmodel.ErrInvalidConfig, len(inferred), len(truth))
	}
	if len(truth) == 0 {
		return 0, fmt.Errorf("%w: empty matrices", genmodel.ErrInvalidConfig)
	}
	if threshold <= 0 || threshold > 1 {
		return 0, fmt.Errorf("%w: dominance threshold must be in (0, 1], got %v", genmodel.ErrInvalidConfig, threshold)
	}

	total := 0.0
	for i := range truth {
		mass := 0.0
		any := false
		for j, tv := range truth[i] {
			if tv >= threshold {
				mass += inferred[i][j]
				any = true
			}
		}
		if !any {
			mass = inferred[i][truth[i].ArgMax()]
		}
		if mass > 1 {
			mass = 1
		}
		total += mass
	}
	return total / float64(len(truth)), nil
}
