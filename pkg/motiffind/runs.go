package motiffind

import (
	"context"
)

// RunItem is one row of a run listing.
type RunItem struct {
	RunID          string
	CreatedAtUTC   string
	SequenceCount  int
	SequenceLength int
	MotifLength    int
	Seed           int64
	Consensus      string
	Score          float64
	Converged      bool
}

// RunDetail is the full stored outcome of one run.
type RunDetail struct {
	RunID          string
	CreatedAtUTC   string
	SequenceCount  int
	SequenceLength int
	MotifLength    int
	PresencePrior  float64
	PriorStrength  float64
	Seed           int64
	PFM            [][]float64
	TruePFM        [][]float64
	Consensus      string
	TrueConsensus  string
	Score          float64
	LogLikelihood  float64
	Converged      bool
	Iterations     int
	BestRestart    int
	DurationMS     int64
}

// Runs lists the most recent stored runs, newest first. A non-positive
// limit returns everything.
func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	records, err := c.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]RunItem, 0, len(records))
	for _, rec := range records {
		items = append(items, RunItem{
			RunID:          rec.ID,
			CreatedAtUTC:   rec.CreatedAtUTC,
			SequenceCount:  rec.Config.SequenceCount,
			SequenceLength: rec.Config.SequenceLength,
			MotifLength:    rec.Config.MotifLength,
			Seed:           rec.Config.Seed,
			Consensus:      rec.Consensus,
			Score:          rec.Score,
			Converged:      rec.Converged,
		})
	}
	return items, nil
}

// GetRun fetches one stored run by id.
func (c *Client) GetRun(ctx context.Context, id string) (RunDetail, bool, error) {
	rec, ok, err := c.store.GetRun(ctx, id)
	if err != nil || !ok {
		return RunDetail{}, ok, err
	}
	return RunDetail{
		RunID:          rec.ID,
		CreatedAtUTC:   rec.CreatedAtUTC,
		SequenceCount:  rec.Config.SequenceCount,
		SequenceLength: rec.Config.SequenceLength,
		MotifLength:    rec.Config.MotifLength,
		PresencePrior:  rec.Config.PresencePrior,
		PriorStrength:  rec.Config.PriorStrength,
		Seed:           rec.Config.Seed,
		PFM:            rec.PFM,
		TruePFM:        rec.TruePFM,
		Consensus:      rec.Consensus,
		TrueConsensus:  rec.TrueConsensus,
		Score:          rec.Score,
		LogLikelihood:  rec.LogLikelihood,
		Converged:      rec.Converged,
		Iterations:     rec.Iterations,
		BestRestart:    rec.BestRestart,
		DurationMS:     rec.DurationMS,
	}, true, nil
}

// Reset clears every stored run and sweep.
func (c *Client) Reset(ctx context.Context) error {
	return c.store.Reset(ctx)
}
