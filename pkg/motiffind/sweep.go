package motiffind

import (
	"context"
	"time"

	"github.com/google/uuid"

	"motiffind/internal/dist"
	"motiffind/internal/eval"
	"motiffind/internal/experiment"
	"motiffind/internal/genmodel"
	"motiffind/internal/model"
	"motiffind/internal/storage"
)

// SweepRequest configures an experiment grid over dataset shapes. Zero
// fields take the same defaults as RunRequest.
type SweepRequest struct {
	SequenceCounts  []int
	SequenceLengths []int
	Replicates      int

	TruePFM            [][]float64
	PresencePrior      float64
	PriorStrength      float64
	IterationCap       int
	Tolerance          float64
	Restarts           int
	Seed               int64
	Workers            int
	DominanceThreshold float64
}

// SweepCell is the aggregated outcome of one grid cell.
type SweepCell struct {
	SequenceCount  int
	SequenceLength int
	Replicates     int
	MeanScore      float64
	StdScore       float64
	MinScore       float64
	MaxScore       float64
	ConvergedRuns  int
}

type SweepSummary struct {
	SweepID      string
	Cells        []SweepCell
	ArtifactPath string
	Duration     time.Duration
}

func (req *SweepRequest) applyDefaults() {
	if len(req.SequenceCounts) == 0 {
		req.SequenceCounts = []int{10, 20, 30, 50}
	}
	if len(req.SequenceLengths) == 0 {
		req.SequenceLengths = []int{100}
	}
	if req.Replicates <= 0 {
		req.Replicates = 5
	}
	run := RunRequest{
		TruePFM:            req.TruePFM,
		PresencePrior:      req.PresencePrior,
		PriorStrength:      req.PriorStrength,
		IterationCap:       req.IterationCap,
		Tolerance:          req.Tolerance,
		Restarts:           req.Restarts,
		Seed:               req.Seed,
		Workers:            req.Workers,
		DominanceThreshold: req.DominanceThreshold,
	}
	run.applyDefaults()
	req.TruePFM = run.TruePFM
	req.PresencePrior = run.PresencePrior
	req.PriorStrength = run.PriorStrength
	req.IterationCap = run.IterationCap
	req.Tolerance = run.Tolerance
	req.Restarts = run.Restarts
	req.Seed = run.Seed
	req.Workers = run.Workers
	req.DominanceThreshold = run.DominanceThreshold
}

// Sweep runs the full pipeline for every (count, length) cell, persists the
// aggregated record, and writes a JSON artifact.
func (c *Client) Sweep(ctx context.Context, req SweepRequest) (SweepSummary, error) {
	req.applyDefaults()
	start := time.Now()

	truth, err := dist.FromRows(req.TruePFM)
	if err != nil {
		return SweepSummary{}, err
	}
	runner := experiment.Runner{
		Truth: truth,
		Model: genmodel.Model{
			Background:    dist.Uniform(),
			MotifLength:   len(truth),
			PresencePrior: req.PresencePrior,
			PriorStrength: req.PriorStrength,
		},
		IterationCap:       req.IterationCap,
		Tolerance:          req.Tolerance,
		Restarts:           req.Restarts,
		Seed:               req.Seed,
		Workers:            req.Workers,
		DominanceThreshold: req.DominanceThreshold,
		Logger:             c.logger,
	}
	cells, err := runner.Sweep(ctx, experiment.Grid{
		Counts:     req.SequenceCounts,
		Lengths:    req.SequenceLengths,
		Replicates: req.Replicates,
	})
	if err != nil {
		return SweepSummary{}, err
	}

	sweep := model.SweepRecord{
		VersionedRecord: storage.Stamp(),
		ID:              uuid.NewString(),
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
		Config: model.RunConfig{
			MotifLength:        len(req.TruePFM),
			PresencePrior:      req.PresencePrior,
			PriorStrength:      req.PriorStrength,
			IterationCap:       req.IterationCap,
			Tolerance:          req.Tolerance,
			Restarts:           req.Restarts,
			Seed:               req.Seed,
			Workers:            req.Workers,
			DominanceThreshold: req.DominanceThreshold,
		},
		Cells: cells,
	}
	if err := c.store.SaveSweep(ctx, sweep); err != nil {
		return SweepSummary{}, err
	}
	artifactPath, err := experiment.WriteSweepArtifact(c.experimentsDir, sweep)
	if err != nil {
		return SweepSummary{}, err
	}

	out := make([]SweepCell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, SweepCell{
			SequenceCount:  cell.SequenceCount,
			SequenceLength: cell.SequenceLength,
			Replicates:     cell.Replicates,
			MeanScore:      cell.MeanScore,
			StdScore:       cell.StdScore,
			MinScore:       cell.MinScore,
			MaxScore:       cell.MaxScore,
			ConvergedRuns:  cell.ConvergedRuns,
		})
	}
	return SweepSummary{
		SweepID:      sweep.ID,
		Cells:        out,
		ArtifactPath: artifactPath,
		Duration:     time.Since(start),
	}, nil
}

// TrueConsensus returns the consensus string of a truth matrix given as
// plain rows. Convenience for presentation layers.
func TrueConsensus(rows [][]float64) (string, error) {
	truth, err := dist.FromRows(rows)
	if err != nil {
		return "", err
	}
	return eval.Consensus(truth), nil
}
