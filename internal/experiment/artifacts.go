package experiment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"motiffind/internal/model"
)

// WriteRunArtifact writes one run record as indented JSON under baseDir and
// returns the file path.
func WriteRunArtifact(baseDir string, run model.RunRecord) (string, error) {
	if run.ID == "" {
		return "", fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(baseDir, fmt.Sprintf("run_%s.json", run.ID))
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteSweepArtifact writes one sweep record as indented JSON under baseDir
// and returns the file path.
func WriteSweepArtifact(baseDir string, sweep model.SweepRecord) (string, error) {
	if sweep.ID == "" {
		return "", fmt.Errorf("sweep id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(baseDir, fmt.Sprintf("sweep_%s.json", sweep.ID))
	data, err := json.MarshalIndent(sweep, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
