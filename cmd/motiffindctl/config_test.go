package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadRunRequestFromConfig(t *testing.T) {
	path := writeConfig(t, `{
		"sequence_count": 30,
		"sequence_length": 100,
		"presence_prior": 0.8,
		"prior_strength": 1.0,
		"iteration_cap": 200,
		"tolerance": 0.0001,
		"restarts": 5,
		"seed": 1337,
		"workers": 4,
		"dominance_threshold": 0.4,
		"true_pfm": [
			[0.8, 0.1, 0.05, 0.05],
			[0.05, 0.9, 0.025, 0.025]
		]
	}`)

	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if req.SequenceCount != 30 || req.SequenceLength != 100 {
		t.Fatalf("dataset shape: %+v", req)
	}
	if req.Seed != 1337 || req.Restarts != 5 {
		t.Fatalf("run params: %+v", req)
	}
	if req.PresencePrior != 0.8 || req.DominanceThreshold != 0.4 {
		t.Fatalf("priors: %+v", req)
	}
	if len(req.TruePFM) != 2 || req.TruePFM[1][1] != 0.9 {
		t.Fatalf("truth matrix: %+v", req.TruePFM)
	}
}

func TestLoadRunRequestIgnoresMissingKeys(t *testing.T) {
	path := writeConfig(t, `{"seed": 7}`)
	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if req.Seed != 7 || req.SequenceCount != 0 || req.TruePFM != nil {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestLoadRunRequestRejectsMalformedMatrix(t *testing.T) {
	path := writeConfig(t, `{"true_pfm": [[0.5, "x"]]}`)
	if _, err := loadRunRequestFromConfig(path); err == nil {
		t.Fatal("expected error for non-numeric matrix entry")
	}
}

func TestLoadSweepRequestFromConfig(t *testing.T) {
	path := writeConfig(t, `{
		"sequence_counts": [10, 20, 50],
		"sequence_lengths": [100],
		"replicates": 3,
		"restarts": 4,
		"seed": 99
	}`)

	req, err := loadSweepRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(req.SequenceCounts) != 3 || req.SequenceCounts[2] != 50 {
		t.Fatalf("counts: %+v", req.SequenceCounts)
	}
	if len(req.SequenceLengths) != 1 || req.SequenceLengths[0] != 100 {
		t.Fatalf("lengths: %+v", req.SequenceLengths)
	}
	if req.Replicates != 3 || req.Restarts != 4 || req.Seed != 99 {
		t.Fatalf("params: %+v", req)
	}
}

func TestLoadSweepRequestRejectsNonIntegerCounts(t *testing.T) {
	path := writeConfig(t, `{"sequence_counts": [10.5]}`)
	if _, err := loadSweepRequestFromConfig(path); err == nil {
		t.Fatal("expected error for fractional count")
	}
}

func TestParseIntList(t *testing.T) {
	got, err := parseIntList("10, 20,50")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 || got[0] != 10 || got[2] != 50 {
		t.Fatalf("unexpected list: %v", got)
	}
	if _, err := parseIntList(""); err == nil {
		t.Fatal("expected error for empty list")
	}
	if _, err := parseIntList("a,b"); err == nil {
		t.Fatal("expected error for non-integers")
	}
}
