// Package motiffind is the embedding API for motif discovery experiments:
// it wires the sampler, the inference engine, the evaluator, and the run
// store behind one client.
package motiffind

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"motiffind/internal/dist"
	"motiffind/internal/eval"
	"motiffind/internal/experiment"
	"motiffind/internal/genmodel"
	"motiffind/internal/infer"
	"motiffind/internal/model"
	"motiffind/internal/sample"
	"motiffind/internal/storage"
)

const defaultExperimentsDir = "experiments"

// engineSeedOffset keeps the sampler stream disjoint from every restart
// stream derived from the same base seed.
const engineSeedOffset = 1

type Options struct {
	StoreKind      string
	DBPath         string
	ExperimentsDir string
	Logger         *zerolog.Logger
}

type Client struct {
	store          storage.Store
	experimentsDir string
	logger         *zerolog.Logger
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.StoreKind == "" {
		opts.StoreKind = storage.DefaultStoreKind()
	}
	if opts.ExperimentsDir == "" {
		opts.ExperimentsDir = defaultExperimentsDir
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}

	store, err := storage.NewStore(opts.StoreKind, opts.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return &Client{
		store:          store,
		experimentsDir: opts.ExperimentsDir,
		logger:         opts.Logger,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// RunRequest configures one synthetic-data discovery run. Zero fields take
// the documented defaults.
type RunRequest struct {
	SequenceCount  int
	SequenceLength int

	// TruePFM is the ground-truth motif used for generation and scoring.
	// Defaults to DefaultTrueMotif. Its length fixes the motif length.
	TruePFM [][]float64

	PresencePrior      float64
	PriorStrength      float64
	IterationCap       int
	Tolerance          float64
	Restarts           int
	Seed               int64
	Workers            int
	DominanceThreshold float64
}

type RunSummary struct {
	RunID         string
	Consensus     string
	TrueConsensus string
	Score         float64
	LogLikelihood float64
	Converged     bool
	Iterations    int
	BestRestart   int
	PFM           [][]float64
	ArtifactPath  string
	Duration      time.Duration
}

// DefaultTrueMotif is an 8-column demonstration motif with two sharply
// conserved columns, two ambiguous two-base columns, and one uninformative
// column.
func DefaultTrueMotif() [][]float64 {
	return [][]float64{
		{0.80, 0.10, 0.05, 0.05},
		{0.05, 0.90, 0.025, 0.025},
		{0.00, 0.00, 0.50, 0.50},
		{0.25, 0.25, 0.25, 0.25},
		{0.10, 0.10, 0.10, 0.70},
		{0.025, 0.025, 0.90, 0.05},
		{0.90, 0.05, 0.025, 0.025},
		{0.50, 0.50, 0.00, 0.00},
	}
}

func (req *RunRequest) applyDefaults() {
	if req.SequenceCount <= 0 {
		req.SequenceCount = 30
	}
	if req.SequenceLength <= 0 {
		req.SequenceLength = 100
	}
	if req.TruePFM == nil {
		req.TruePFM = DefaultTrueMotif()
	}
	if req.PresencePrior <= 0 {
		req.PresencePrior = 0.8
	}
	if req.PriorStrength <= 0 {
		req.PriorStrength = 1
	}
	if req.IterationCap <= 0 {
		req.IterationCap = 200
	}
	if req.Tolerance <= 0 {
		req.Tolerance = 1e-4
	}
	if req.Restarts <= 0 {
		req.Restarts = 5
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}
	if req.Workers <= 0 {
		req.Workers = 4
	}
	if req.DominanceThreshold <= 0 {
		req.DominanceThreshold = eval.DefaultDominanceThreshold
	}
}

// Run samples a dataset from the true motif, infers a matrix from the
// observed sequences alone, scores it against the truth, persists the
// outcome, and writes a JSON artifact.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	req.applyDefaults()
	start := time.Now()

	truth, err := dist.FromRows(req.TruePFM)
	if err != nil {
		return RunSummary{}, err
	}
	gm := genmodel.Model{
		Background:    dist.Uniform(),
		MotifLength:   len(truth),
		PresencePrior: req.PresencePrior,
		PriorStrength: req.PriorStrength,
	}

	sampleRNG := rand.New(rand.NewSource(req.Seed))
	ds, err := sample.Draw(sampleRNG, truth, gm, req.SequenceCount, req.SequenceLength)
	if err != nil {
		return RunSummary{}, err
	}

	engine, err := infer.New(infer.Config{
		Model:        gm,
		IterationCap: req.IterationCap,
		Tolerance:    req.Tolerance,
		Restarts:     req.Restarts,
		Seed:         req.Seed + engineSeedOffset,
		Workers:      req.Workers,
		Logger:       c.logger,
	}, ds.Sequences)
	if err != nil {
		return RunSummary{}, err
	}
	res, err := engine.Run(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	score, err := eval.Score(res.PFM, truth, req.DominanceThreshold)
	if err != nil {
		return RunSummary{}, err
	}

	run := model.RunRecord{
		VersionedRecord: storage.Stamp(),
		ID:              uuid.NewString(),
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
		Config:          runConfig(req),
		PFM:             res.PFM.Rows(),
		TruePFM:         req.TruePFM,
		Consensus:       eval.Consensus(res.PFM),
		TrueConsensus:   eval.Consensus(truth),
		Score:           score,
		LogLikelihood:   res.LogLikelihood,
		Converged:       res.Converged,
		Iterations:      res.Iterations,
		BestRestart:     res.Restart,
		DurationMS:      time.Since(start).Milliseconds(),
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return RunSummary{}, err
	}
	artifactPath, err := experiment.WriteRunArtifact(c.experimentsDir, run)
	if err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:         run.ID,
		Consensus:     run.Consensus,
		TrueConsensus: run.TrueConsensus,
		Score:         run.Score,
		LogLikelihood: run.LogLikelihood,
		Converged:     run.Converged,
		Iterations:    run.Iterations,
		BestRestart:   run.BestRestart,
		PFM:           run.PFM,
		ArtifactPath:  artifactPath,
		Duration:      time.Since(start),
	}, nil
}

func runConfig(req RunRequest) model.RunConfig {
	return model.RunConfig{
		SequenceCount:      req.SequenceCount,
		SequenceLength:     req.SequenceLength,
		MotifLength:        len(req.TruePFM),
		PresencePrior:      req.PresencePrior,
		PriorStrength:      req.PriorStrength,
		IterationCap:       req.IterationCap,
		Tolerance:          req.Tolerance,
		Restarts:           req.Restarts,
		Seed:               req.Seed,
		Workers:            req.Workers,
		DominanceThreshold: req.DominanceThreshold,
	}
}
