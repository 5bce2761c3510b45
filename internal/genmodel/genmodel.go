// Package genmodel declares the generative structure shared by the synthetic
// sampler and the inference engine: each motif column is an independent
// Dirichlet draw, each sequence independently carries the motif with a fixed
// prior probability at a uniformly chosen offset, and every position outside
// the motif window is a background draw. The package only defines and scores
// the model; it runs no inference.
package genmodel

import (
	"errors"
	"fmt"
	"math"

	"motiffind/internal/dist"
	"motiffind/internal/nuc"
)

// ErrInvalidConfig marks configuration rejected before any computation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Model fixes the hyperparameters of the generative process.
type Model struct {
	// Background is the categorical distribution for every non-motif
	// position. Strictly positive; it is logged during scoring.
	Background dist.Column

	// MotifLength is the number of motif columns M.
	MotifLength int

	// PresencePrior is the Bernoulli parameter p for the per-sequence
	// presence indicator, in (0, 1].
	PresencePrior float64

	// PriorStrength is the symmetric Dirichlet concentration alpha for each
	// motif column.
	PriorStrength float64
}

func (m Model) Validate() error {
	if m.MotifLength <= 0 {
		return fmt.Errorf("%w: motif length must be > 0, got %d", ErrInvalidConfig, m.MotifLength)
	}
	if m.PresencePrior <= 0 || m.PresencePrior > 1 {
		return fmt.Errorf("%w: presence prior must be in (0, 1], got %v", ErrInvalidConfig, m.PresencePrior)
	}
	if m.PriorStrength <= 0 {
		return fmt.Errorf("%w: prior strength must be > 0, got %v", ErrInvalidConfig, m.PriorStrength)
	}
	if err := m.Background.ValidateStrict(); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Hypotheses returns the size of the latent space for a sequence of length
// seqLen: one absent hypothesis plus one present hypothesis per offset.
func (m Model) Hypotheses(seqLen int) int {
	return seqLen - m.MotifLength + 2
}

// Offsets returns the number of admissible motif start offsets, L - M + 1.
func (m Model) Offsets(seqLen int) int {
	return seqLen - m.MotifLength + 1
}

// LogPriorAbsent is log(1-p). Returns -Inf when p = 1, which simply removes
// the absent hypothesis from the posterior.
func (m Model) LogPriorAbsent() float64 {
	return math.Log(1 - m.PresencePrior)
}

// LogPriorPresentAt is log(p / (L-M+1)): presence times the uniform offset
// choice.
func (m Model) LogPriorPresentAt(seqLen int) float64 {
	return math.Log(m.PresencePrior) - math.Log(float64(m.Offsets(seqLen)))
}

// ScoreAbsent returns the log-joint of the sequence under the absent
// hypothesis: every position a background draw, plus the absent prior.
// logBG is the element-wise log of the background column.
func (m Model) ScoreAbsent(seq nuc.Sequence, logBG dist.Column) float64 {
	total := m.LogPriorAbsent()
	for _, b := range seq {
		total += logBG[b]
	}
	return total
}

// ScorePresentAt returns the log-joint of the sequence with the motif at
// offset k: motif-column draws inside the window, background outside, plus
// the present-at-k prior. logPFM holds element-wise logs of the current
// motif columns.
func (m Model) ScorePresentAt(seq nuc.Sequence, logPFM dist.PFM, logBG dist.Column, k int) float64 {
	total := m.LogPriorPresentAt(len(seq))
	for i, b := range seq {
		if i >= k && i < k+m.MotifLength {
			total += logPFM[i-k][b]
		} else {
			total += logBG[b]
		}
	}
	return total
}
