// Package experiment runs sample-infer-evaluate pipelines over a grid of
// dataset shapes and aggregates score statistics per grid cell.
package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"motiffind/internal/dist"
	"motiffind/internal/eval"
	"motiffind/internal/genmodel"
	"motiffind/internal/infer"
	"motiffind/internal/model"
	"motiffind/internal/sample"
)

// seedStride separates the random streams of grid replicates; each restart
// within a replicate only consumes offsets [0, Restarts).
const seedStride = 1_000_003

// Grid enumerates dataset shapes to sweep. Every (count, length) pair is one
// cell, run Replicates times with derived seeds.
type Grid struct {
	Counts     []int
	Lengths    []int
	Replicates int
}

// Runner holds everything constant across the sweep.
type Runner struct {
	Truth              dist.PFM
	Model              genmodel.Model
	IterationCap       int
	Tolerance          float64
	Restarts           int
	Seed               int64
	Workers            int
	DominanceThreshold float64
	Logger             *zerolog.Logger
}

func (r Runner) validate(grid Grid) error {
	if err := r.Model.Validate(); err != nil {
		return err
	}
	if len(r.Truth) != r.Model.MotifLength {
		return fmt.Errorf("%w: truth matrix has %d columns, motif length is %d",
			genmodel.ErrInvalidConfig, len(r.Truth), r.Model.MotifLength)
	}
	if len(grid.Counts) == 0 || len(grid.Lengths) == 0 {
		return fmt.Errorf("%w: sweep grid must name at least one count and one length", genmodel.ErrInvalidConfig)
	}
	if grid.Replicates <= 0 {
		return fmt.Errorf("%w: replicates must be > 0, got %d", genmodel.ErrInvalidConfig, grid.Replicates)
	}
	return nil
}

// Sweep runs the full pipeline for every cell of the grid and returns one
// aggregated record per cell, in count-major order.
func (r Runner) Sweep(ctx context.Context, grid Grid) ([]model.SweepCell, error) {
	if err := r.validate(grid); err != nil {
		return nil, err
	}
	logger := r.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	cells := make([]model.SweepCell, 0, len(grid.Counts)*len(grid.Lengths))
	cellIdx := 0
	for _, count := range grid.Counts {
		for _, length := range grid.Lengths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cell, err := r.runCell(ctx, count, length, grid.Replicates, cellIdx)
			if err != nil {
				return nil, fmt.Errorf("cell count=%d length=%d: %w", count, length, err)
			}
			logger.Info().
				Int("sequence_count", count).
				Int("sequence_length", length).
				Float64("mean_score", cell.MeanScore).
				Msg("sweep cell complete")
			cells = append(cells, cell)
			cellIdx++
		}
	}
	return cells, nil
}

func (r Runner) runCell(ctx context.Context, count, length, replicates, cellIdx int) (model.SweepCell, error) {
	scores := make([]float64, 0, replicates)
	converged := 0
	for rep := 0; rep < replicates; rep++ {
		seed := r.Seed + int64(cellIdx*replicates+rep)*seedStride

		sampleRNG := rand.New(rand.NewSource(seed))
		ds, err := sample.Draw(sampleRNG, r.Truth, r.Model, count, length)
		if err != nil {
			return model.SweepCell{}, err
		}

		engine, err := infer.New(infer.Config{
			Model:        r.Model,
			IterationCap: r.IterationCap,
			Tolerance:    r.Tolerance,
			Restarts:     r.Restarts,
			Seed:         seed + 1,
			Workers:      r.Workers,
			Logger:       r.Logger,
		}, ds.Sequences)
		if err != nil {
			return model.SweepCell{}, err
		}
		res, err := engine.Run(ctx)
		if err != nil {
			return model.SweepCell{}, err
		}
		score, err := eval.Score(res.PFM, r.Truth, r.DominanceThreshold)
		if err != nil {
			return model.SweepCell{}, err
		}
		scores = append(scores, score)
		if res.Converged {
			converged++
		}
	}

	mean, std := MeanStd(scores)
	min, max := MinMax(scores)
	return model.SweepCell{
		SequenceCount:  count,
		SequenceLength: length,
		Replicates:     replicates,
		MeanScore:      mean,
		StdScore:       std,
		MinScore:       min,
		MaxScore:       max,
		ConvergedRuns:  converged,
	}, nil
}
