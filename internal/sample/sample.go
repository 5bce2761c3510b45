// Package sample generates synthetic sequence datasets from an explicit
// ground-truth motif, using the exact generative semantics the inference
// engine assumes. The truth matrix is a parameter, never shared state, so
// concurrent experiments cannot interfere.
package sample

import (
	"fmt"
	"math/rand"

	"motiffind/internal/dist"
	"motiffind/internal/genmodel"
	"motiffind/internal/nuc"
)

// Dataset is a sampled batch of sequences together with the latent truth
// that produced each one, kept for diagnostics and evaluation.
type Dataset struct {
	Sequences []nuc.Sequence
	Present   []bool
	Positions []int // motif start offset, -1 when absent
}

// Draw samples count sequences of the given length. Each sequence carries
// the motif with probability model.PresencePrior at a uniform offset;
// remaining positions are background draws from the truth-independent
// background column.
func Draw(rng *rand.Rand, truth dist.PFM, model genmodel.Model, count, length int) (Dataset, error) {
	if err := model.Validate(); err != nil {
		return Dataset{}, err
	}
	if count <= 0 {
		return Dataset{}, fmt.Errorf("%w: sequence count must be > 0, got %d", genmodel.ErrInvalidConfig, count)
	}
	if len(truth) != model.MotifLength {
		return Dataset{}, fmt.Errorf("%w: truth matrix has %d columns, motif length is %d", genmodel.ErrInvalidConfig, len(truth), model.MotifLength)
	}
	if length < model.MotifLength {
		return Dataset{}, fmt.Errorf("%w: sequence length %d is shorter than motif length %d", genmodel.ErrInvalidConfig, length, model.MotifLength)
	}
	if err := truth.Validate(); err != nil {
		return Dataset{}, fmt.Errorf("%w: truth matrix: %v", genmodel.ErrInvalidConfig, err)
	}

	ds := Dataset{
		Sequences: make([]nuc.Sequence, count),
		Present:   make([]bool, count),
		Positions: make([]int, count),
	}
	for n := 0; n < count; n++ {
		seq := make(nuc.Sequence, length)
		for i := range seq {
			seq[i] = drawBase(rng, model.Background)
		}
		ds.Positions[n] = -1
		if rng.Float64() < model.PresencePrior {
			k := rng.Intn(model.Offsets(length))
			for i := 0; i < model.MotifLength; i++ {
				seq[k+i] = drawBase(rng, truth[i])
			}
			ds.Present[n] = true
			ds.Positions[n] = k
		}
		ds.Sequences[n] = seq
	}
	return ds, nil
}

func drawBase(rng *rand.Rand, col dist.Column) nuc.Base {
	u := rng.Float64()
	acc := 0.0
	for i := 0; i < nuc.AlphabetSize-1; i++ {
		acc += col[i]
		if u < acc {
			return nuc.Base(i)
		}
	}
	return nuc.T
}
