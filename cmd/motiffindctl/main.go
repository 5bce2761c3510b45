package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"motiffind/internal/storage"
	"motiffind/internal/term"
	"motiffind/pkg/motiffind"
)

// Env carries environment-variable defaults for flags shared by every
// subcommand, read under the MOTIFFIND_ prefix.
type Env struct {
	Store          string `default:"memory"`
	DBPath         string `envconfig:"DB_PATH" default:"motiffind.db"`
	ExperimentsDir string `envconfig:"EXPERIMENTS_DIR" default:"experiments"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"warn"`
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var env Env
	if err := envconfig.Process("motiffind", &env); err != nil {
		return err
	}
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "run":
		return runRun(ctx, env, args[1:])
	case "sweep":
		return runSweep(ctx, env, args[1:])
	case "runs":
		return runRuns(ctx, env, args[1:])
	case "show":
		return runShow(ctx, env, args[1:])
	case "init":
		return runInit(ctx, env, args[1:])
	case "reset":
		return runReset(ctx, env, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: motiffindctl <run|sweep|runs|show|init|reset> [flags]", msg)
}

func newLogger(env Env, verbose bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(env.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !term.IsTerminal(os.Stderr)}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func newClient(ctx context.Context, env Env, storeKind, dbPath string, logger *zerolog.Logger) (*motiffind.Client, error) {
	return motiffind.NewClient(ctx, motiffind.Options{
		StoreKind:      storeKind,
		DBPath:         dbPath,
		ExperimentsDir: env.ExperimentsDir,
		Logger:         logger,
	})
}

func runRun(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind := fs.String("store", env.Store, "store backend: memory|sqlite")
	dbPath := fs.String("db-path", env.DBPath, "sqlite database path")
	configPath := fs.String("config", "", "JSON run request file")
	count := fs.Int("count", 30, "number of sequences to sample")
	length := fs.Int("length", 100, "length of each sequence")
	presencePrior := fs.Float64("presence-prior", 0.8, "prior probability that a sequence carries the motif")
	priorStrength := fs.Float64("prior-strength", 1, "Dirichlet pseudo-count per base")
	iterationCap := fs.Int("iteration-cap", 200, "maximum EM passes per restart")
	tolerance := fs.Float64("tolerance", 1e-4, "L1 convergence tolerance")
	restarts := fs.Int("restarts", 5, "independent random restarts")
	seed := fs.Int64("seed", 0, "random seed; 0 means entropy-seeded")
	workers := fs.Int("workers", 4, "concurrent restarts")
	threshold := fs.Float64("threshold", 0.4, "dominance threshold for scoring")
	verbose := fs.Bool("verbose", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := motiffind.RunRequest{
		SequenceCount:      *count,
		SequenceLength:     *length,
		PresencePrior:      *presencePrior,
		PriorStrength:      *priorStrength,
		IterationCap:       *iterationCap,
		Tolerance:          *tolerance,
		Restarts:           *restarts,
		Seed:               *seed,
		Workers:            *workers,
		DominanceThreshold: *threshold,
	}
	if *configPath != "" {
		fileReq, err := loadRunRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = fileReq
	}

	logger := newLogger(env, *verbose)
	client, err := newClient(ctx, env, *storeKind, *dbPath, &logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}
	printRunSummary(summary)
	return nil
}

func printRunSummary(s motiffind.RunSummary) {
	color := term.IsTerminal(os.Stdout)
	band := term.BandFor(s.Score)

	fmt.Printf("run %s finished in %s\n", s.RunID, s.Duration.Round(time.Millisecond))
	fmt.Printf("consensus: %s (truth: %s)\n", s.Consensus, s.TrueConsensus)
	fmt.Printf("score:     %s (%s)\n", term.Colorize(term.Bar(s.Score, 20), band, color), band)
	fmt.Printf("log-likelihood %.2f, best restart %d\n", s.LogLikelihood, s.BestRestart)
	if s.Converged {
		fmt.Printf("converged after %d iterations\n", s.Iterations)
	} else {
		fmt.Printf("did not converge within %d iterations\n", s.Iterations)
	}
	fmt.Printf("artifact: %s\n", s.ArtifactPath)
}

func runSweep(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	storeKind := fs.String("store", env.Store, "store backend: memory|sqlite")
	dbPath := fs.String("db-path", env.DBPath, "sqlite database path")
	configPath := fs.String("config", "", "JSON sweep request file")
	counts := fs.String("counts", "10,20,30,50", "comma-separated sequence counts")
	lengths := fs.String("lengths", "100", "comma-separated sequence lengths")
	replicates := fs.Int("replicates", 5, "replicates per grid cell")
	restarts := fs.Int("restarts", 5, "independent random restarts")
	seed := fs.Int64("seed", 0, "random seed; 0 means entropy-seeded")
	workers := fs.Int("workers", 4, "concurrent restarts")
	verbose := fs.Bool("verbose", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := motiffind.SweepRequest{
		Replicates: *replicates,
		Restarts:   *restarts,
		Seed:       *seed,
		Workers:    *workers,
	}
	var err error
	if req.SequenceCounts, err = parseIntList(*counts); err != nil {
		return fmt.Errorf("counts: %w", err)
	}
	if req.SequenceLengths, err = parseIntList(*lengths); err != nil {
		return fmt.Errorf("lengths: %w", err)
	}
	if *configPath != "" {
		fileReq, err := loadSweepRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = fileReq
	}

	logger := newLogger(env, *verbose)
	client, err := newClient(ctx, env, *storeKind, *dbPath, &logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Sweep(ctx, req)
	if err != nil {
		return err
	}
	printSweepSummary(summary)
	return nil
}

func printSweepSummary(s motiffind.SweepSummary) {
	color := term.IsTerminal(os.Stdout)

	fmt.Printf("sweep %s finished in %s\n", s.SweepID, s.Duration.Round(time.Millisecond))
	fmt.Printf("%-8s %-8s %-6s %s\n", "count", "length", "runs", "mean score")
	for _, cell := range s.Cells {
		band := term.BandFor(cell.MeanScore)
		fmt.Printf("%-8d %-8d %-6d %s  std %.3f  range [%.3f, %.3f]\n",
			cell.SequenceCount, cell.SequenceLength, cell.Replicates,
			term.Colorize(term.Bar(cell.MeanScore, 20), band, color),
			cell.StdScore, cell.MinScore, cell.MaxScore)
	}
	fmt.Printf("artifact: %s\n", s.ArtifactPath)
}

func runRuns(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", env.Store, "store backend: memory|sqlite")
	dbPath := fs.String("db-path", env.DBPath, "sqlite database path")
	limit := fs.Int("limit", 20, "max runs to list; 0 lists everything")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := newLogger(env, false)
	client, err := newClient(ctx, env, *storeKind, *dbPath, &logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	items, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no stored runs")
		return nil
	}
	for _, item := range items {
		age := item.CreatedAtUTC
		if t, err := time.Parse(time.RFC3339, item.CreatedAtUTC); err == nil {
			age = humanize.Time(t)
		}
		fmt.Printf("%s  %-14s %3dx%-4d motif %d  score %.3f  %s\n",
			item.RunID, age, item.SequenceCount, item.SequenceLength,
			item.MotifLength, item.Score, item.Consensus)
	}
	return nil
}

func runShow(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	storeKind := fs.String("store", env.Store, "store backend: memory|sqlite")
	dbPath := fs.String("db-path", env.DBPath, "sqlite database path")
	runID := fs.String("run-id", "", "run id to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("show requires -run-id")
	}

	logger := newLogger(env, false)
	client, err := newClient(ctx, env, *storeKind, *dbPath, &logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	detail, ok, err := client.GetRun(ctx, *runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run not found: %s", *runID)
	}
	printRunDetail(detail)
	return nil
}

func printRunDetail(d motiffind.RunDetail) {
	color := term.IsTerminal(os.Stdout)
	band := term.BandFor(d.Score)

	fmt.Printf("run %s (%s)\n", d.RunID, d.CreatedAtUTC)
	fmt.Printf("dataset:   %s sequences of %s bases, presence prior %.2f, seed %d\n",
		humanize.Comma(int64(d.SequenceCount)), humanize.Comma(int64(d.SequenceLength)),
		d.PresencePrior, d.Seed)
	fmt.Printf("consensus: %s (truth: %s)\n", d.Consensus, d.TrueConsensus)
	fmt.Printf("score:     %s (%s)\n", term.Colorize(term.Bar(d.Score, 20), band, color), band)
	fmt.Printf("inferred matrix (A C G T per column):\n")
	for i, row := range d.PFM {
		fmt.Printf("  %2d: %.3f %.3f %.3f %.3f\n", i, row[0], row[1], row[2], row[3])
	}
}

func runInit(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", env.Store, "store backend: memory|sqlite")
	dbPath := fs.String("db-path", env.DBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", env.Store, "store backend: memory|sqlite")
	dbPath := fs.String("db-path", env.DBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return err
	}
	if err := store.Reset(ctx); err != nil {
		return err
	}
	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}
