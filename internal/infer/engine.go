// Package infer recovers a motif's position frequency matrix from observed
// sequences by expectation-maximization over the per-sequence latent
// presence and offset, with variational Dirichlet posteriors over the motif
// columns. All hypothesis weights are computed in log space.
package infer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"motiffind/internal/dist"
	"motiffind/internal/genmodel"
	"motiffind/internal/nuc"
)

// Config bounds one inference run.
type Config struct {
	Model genmodel.Model

	// IterationCap bounds EM passes per restart. Hitting the cap is not an
	// error; the result is flagged as non-converged.
	IterationCap int

	// Tolerance is the L1 distance over all columns and bases below which
	// two successive matrix estimates count as converged.
	Tolerance float64

	// Restarts is the number of independent random initializations.
	Restarts int

	// Seed derives each restart's private random stream as Seed + restart
	// index. Zero means entropy seeding; such runs are not reproducible.
	Seed int64

	// Workers caps concurrent restarts. Defaults to 1.
	Workers int

	// InitialPFM, when set, replaces the random initialization of every
	// restart. Used by tests that need a fixed starting point.
	InitialPFM dist.PFM

	Logger *zerolog.Logger
}

// Result is the outcome of one restart, or of the whole run after the
// controller picks the best restart.
type Result struct {
	PFM dist.PFM

	// Responsibilities holds, per sequence, the posterior over hypotheses
	// under the final matrix: index 0 is the absent hypothesis, index 1+k is
	// presence at offset k.
	Responsibilities [][]float64

	// LogLikelihood is the training-data log-likelihood under the final
	// matrix, the objective used to rank restarts.
	LogLikelihood float64

	Converged  bool
	Iterations int
	Restart    int
}

// Engine holds the observed sequences and everything that is constant
// across iterations and restarts.
type Engine struct {
	cfg   Config
	seqs  []nuc.Sequence
	logBG dist.Column

	// absentScore caches the log-joint of each sequence under the absent
	// hypothesis; it never depends on the motif estimate.
	absentScore []float64
}

// New validates the configuration against the observed sequences. All
// invalid-configuration conditions are reported here, before any iteration.
func New(cfg Config, seqs []nuc.Sequence) (*Engine, error) {
	if err := cfg.Model.Validate(); err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, fmt.Errorf("%w: at least one sequence is required", genmodel.ErrInvalidConfig)
	}
	for i, seq := range seqs {
		if len(seq) < cfg.Model.MotifLength {
			return nil, fmt.Errorf("%w: sequence %d has length %d, shorter than motif length %d",
				genmodel.ErrInvalidConfig, i, len(seq), cfg.Model.MotifLength)
		}
		for j, b := range seq {
			if int(b) >= nuc.AlphabetSize {
				return nil, fmt.Errorf("%w: sequence %d position %d holds invalid base %d",
					genmodel.ErrInvalidConfig, i, j, b)
			}
		}
	}
	if cfg.IterationCap <= 0 {
		return nil, fmt.Errorf("%w: iteration cap must be > 0, got %d", genmodel.ErrInvalidConfig, cfg.IterationCap)
	}
	if cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("%w: convergence tolerance must be > 0, got %v", genmodel.ErrInvalidConfig, cfg.Tolerance)
	}
	if cfg.Restarts <= 0 {
		return nil, fmt.Errorf("%w: restart count must be > 0, got %d", genmodel.ErrInvalidConfig, cfg.Restarts)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.InitialPFM != nil {
		if len(cfg.InitialPFM) != cfg.Model.MotifLength {
			return nil, fmt.Errorf("%w: initial matrix has %d columns, motif length is %d",
				genmodel.ErrInvalidConfig, len(cfg.InitialPFM), cfg.Model.MotifLength)
		}
		for i, col := range cfg.InitialPFM {
			if err := col.ValidateStrict(); err != nil {
				return nil, fmt.Errorf("%w: initial matrix column %d: %v", genmodel.ErrInvalidConfig, i, err)
			}
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}

	e := &Engine{
		cfg:         cfg,
		seqs:        seqs,
		logBG:       cfg.Model.Background.Log(),
		absentScore: make([]float64, len(seqs)),
	}
	for i, seq := range seqs {
		e.absentScore[i] = cfg.Model.ScoreAbsent(seq, e.logBG)
	}
	return e, nil
}

// Run executes every restart and returns the one with the highest
// training-data log-likelihood. Restarts run on a bounded worker pool; each
// owns a private random stream seeded from the configuration seed plus its
// index, so results are reproducible and independent of scheduling.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	type job struct{ restart int }
	type outcome struct {
		restart int
		result  Result
		err     error
	}

	jobs := make(chan job, e.cfg.Restarts)
	outcomes := make(chan outcome, e.cfg.Restarts)
	for r := 0; r < e.cfg.Restarts; r++ {
		jobs <- job{restart: r}
	}
	close(jobs)

	workerCount := e.cfg.Workers
	if workerCount > e.cfg.Restarts {
		workerCount = e.cfg.Restarts
	}

	for w := 0; w < workerCount; w++ {
		go func() {
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					outcomes <- outcome{restart: j.restart, err: err}
					continue
				}
				res, err := e.runRestart(ctx, j.restart)
				outcomes <- outcome{restart: j.restart, result: res, err: err}
			}
		}()
	}

	results := make([]Result, e.cfg.Restarts)
	var firstErr error
	for i := 0; i < e.cfg.Restarts; i++ {
		out := <-outcomes
		if out.err != nil && firstErr == nil {
			firstErr = out.err
		}
		results[out.restart] = out.result
	}
	if firstErr != nil {
		return Result{}, firstErr
	}

	best := 0
	for r := 1; r < len(results); r++ {
		if results[r].LogLikelihood > results[best].LogLikelihood {
			best = r
		}
	}
	e.cfg.Logger.Info().
		Int("restarts", e.cfg.Restarts).
		Int("best_restart", best).
		Float64("log_likelihood", results[best].LogLikelihood).
		Bool("converged", results[best].Converged).
		Msg("restart selection complete")
	return results[best], nil
}

// runRestart performs one full EM run from a fresh initialization.
func (e *Engine) runRestart(ctx context.Context, restart int) (Result, error) {
	model := e.cfg.Model
	rng := rand.New(rand.NewSource(e.cfg.Seed + int64(restart)))

	var pfm dist.PFM
	if e.cfg.InitialPFM != nil {
		pfm = e.cfg.InitialPFM.Clone()
	} else {
		pfm = dist.SamplePFM(rng, model.MotifLength, model.PriorStrength)
	}

	resp := make([][]float64, len(e.seqs))
	scratch := make([][]float64, len(e.seqs))
	for i, seq := range e.seqs {
		resp[i] = make([]float64, model.Hypotheses(len(seq)))
		scratch[i] = make([]float64, model.Hypotheses(len(seq)))
	}

	iterations := 0
	pfm, converged, err := e.optimize(ctx, pfm, resp, &iterations)
	if err != nil {
		return Result{}, err
	}
	ll := e.responsibilities(pfm.Log(), resp)

	// EM over window offsets tends to lock onto a column-shifted copy of the
	// motif. Probe shifted variants of the converged estimate, refit the most
	// promising one, and keep it only when it improves the data
	// log-likelihood.
	for model.MotifLength > 1 && iterations < e.cfg.IterationCap {
		cand := e.bestShift(pfm, scratch)
		refined, refConverged, err := e.optimize(ctx, cand, scratch, &iterations)
		if err != nil {
			return Result{}, err
		}
		refLL := e.responsibilities(refined.Log(), scratch)
		if refLL <= ll {
			break
		}
		pfm = refined
		ll = refLL
		converged = refConverged
	}

	// Recompute responsibilities and the data log-likelihood under the final
	// matrix so the returned posterior matches the returned estimate.
	ll = e.responsibilities(pfm.Log(), resp)

	e.cfg.Logger.Debug().
		Int("restart", restart).
		Int("iterations", iterations).
		Bool("converged", converged).
		Float64("log_likelihood", ll).
		Msg("restart finished")

	return Result{
		PFM:              pfm,
		Responsibilities: resp,
		LogLikelihood:    ll,
		Converged:        converged,
		Iterations:       iterations,
		Restart:          restart,
	}, nil
}

// optimize iterates EM from start until successive estimates move less than
// the tolerance, drawing on the restart's shared iteration budget.
func (e *Engine) optimize(ctx context.Context, start dist.PFM, resp [][]float64, iterations *int) (dist.PFM, bool, error) {
	pfm := start
	for *iterations < e.cfg.IterationCap {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		e.responsibilities(pfm.Log(), resp)
		next := e.reestimate(resp)
		delta := pfm.L1Distance(next)
		pfm = next
		*iterations++
		if delta < e.cfg.Tolerance {
			return pfm, true, nil
		}
	}
	return pfm, false, nil
}

// bestShift returns the column-shifted variant of pfm with the highest data
// log-likelihood, filling vacated columns with the background distribution.
func (e *Engine) bestShift(pfm dist.PFM, scratch [][]float64) dist.PFM {
	model := e.cfg.Model
	bestLL := math.Inf(-1)
	var best dist.PFM
	for s := -(model.MotifLength - 1); s < model.MotifLength; s++ {
		if s == 0 {
			continue
		}
		cand := make(dist.PFM, model.MotifLength)
		for i := range cand {
			if j := i + s; j >= 0 && j < model.MotifLength {
				cand[i] = pfm[j]
			} else {
				cand[i] = model.Background
			}
		}
		if ll := e.responsibilities(cand.Log(), scratch); ll > bestLL {
			bestLL = ll
			best = cand
		}
	}
	return best
}

// responsibilities fills resp with the normalized posterior over hypotheses
// for every sequence under the given log matrix and returns the total data
// log-likelihood. Sequences are independent given the matrix.
func (e *Engine) responsibilities(logPFM dist.PFM, resp [][]float64) float64 {
	model := e.cfg.Model
	total := 0.0
	for s, seq := range e.seqs {
		w := resp[s]
		w[0] = e.absentScore[s]
		offsets := model.Offsets(len(seq))
		for k := 0; k < offsets; k++ {
			w[1+k] = model.ScorePresentAt(seq, logPFM, e.logBG, k)
		}
		z := dist.LogSumExp(w)
		total += z
		for i := range w {
			w[i] = math.Exp(w[i] - z)
		}
	}
	return total
}

// reestimate aggregates expected symbol counts over all present hypotheses,
// adds the prior pseudo-counts, and returns the posterior-mean matrix.
func (e *Engine) reestimate(resp [][]float64) dist.PFM {
	model := e.cfg.Model
	counts := make([]dist.Dirichlet, model.MotifLength)
	for i := range counts {
		for j := range counts[i] {
			counts[i][j] = model.PriorStrength
		}
	}
	for s, seq := range e.seqs {
		offsets := model.Offsets(len(seq))
		for k := 0; k < offsets; k++ {
			wk := resp[s][1+k]
			if wk == 0 {
				continue
			}
			for i := 0; i < model.MotifLength; i++ {
				counts[i][seq[k+i]] += wk
			}
		}
	}
	next := make(dist.PFM, model.MotifLength)
	for i := range counts {
		next[i] = counts[i].Mean()
	}
	return next
}
