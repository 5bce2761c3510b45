package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunConfig is the full configuration of one motif-discovery run, stored
// alongside its outcome so results stay interpretable.
type RunConfig struct {
	SequenceCount      int     `json:"sequence_count"`
	SequenceLength     int     `json:"sequence_length"`
	MotifLength        int     `json:"motif_length"`
	PresencePrior      float64 `json:"presence_prior"`
	PriorStrength      float64 `json:"prior_strength"`
	IterationCap       int     `json:"iteration_cap"`
	Tolerance          float64 `json:"tolerance"`
	Restarts           int     `json:"restarts"`
	Seed               int64   `json:"seed"`
	Workers            int     `json:"workers"`
	DominanceThreshold float64 `json:"dominance_threshold"`
}

// RunRecord is the persisted outcome of one run: the selected matrix, its
// consensus and score against the truth used to generate the data, and
// convergence diagnostics.
type RunRecord struct {
	VersionedRecord
	ID            string      `json:"id"`
	CreatedAtUTC  string      `json:"created_at_utc"`
	Config        RunConfig   `json:"config"`
	PFM           [][]float64 `json:"pfm"`
	TruePFM       [][]float64 `json:"true_pfm,omitempty"`
	Consensus     string      `json:"consensus"`
	TrueConsensus string      `json:"true_consensus,omitempty"`
	Score         float64     `json:"score"`
	LogLikelihood float64     `json:"log_likelihood"`
	Converged     bool        `json:"converged"`
	Iterations    int         `json:"iterations"`
	BestRestart   int         `json:"best_restart"`
	DurationMS    int64       `json:"duration_ms"`
}

// SweepCell is one grid cell of an experiment sweep: a (count, length) pair
// with score statistics over its replicates.
type SweepCell struct {
	SequenceCount  int     `json:"sequence_count"`
	SequenceLength int     `json:"sequence_length"`
	Replicates     int     `json:"replicates"`
	MeanScore      float64 `json:"mean_score"`
	StdScore       float64 `json:"std_score"`
	MinScore       float64 `json:"min_score"`
	MaxScore       float64 `json:"max_score"`
	ConvergedRuns  int     `json:"converged_runs"`
}

// SweepRecord is the persisted outcome of one experiment sweep.
type SweepRecord struct {
	VersionedRecord
	ID           string      `json:"id"`
	CreatedAtUTC string      `json:"created_at_utc"`
	Config       RunConfig   `json:"config"`
	Cells        []SweepCell `json:"cells"`
}
