package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"motiffind/pkg/motiffind"
)

func loadRunRequestFromConfig(path string) (motiffind.RunRequest, error) {
	raw, err := readConfigMap(path)
	if err != nil {
		return motiffind.RunRequest{}, err
	}

	var req motiffind.RunRequest
	if v, ok := asInt(raw["sequence_count"]); ok {
		req.SequenceCount = v
	}
	if v, ok := asInt(raw["sequence_length"]); ok {
		req.SequenceLength = v
	}
	if v, ok := asFloat64(raw["presence_prior"]); ok {
		req.PresencePrior = v
	}
	if v, ok := asFloat64(raw["prior_strength"]); ok {
		req.PriorStrength = v
	}
	if v, ok := asInt(raw["iteration_cap"]); ok {
		req.IterationCap = v
	}
	if v, ok := asFloat64(raw["tolerance"]); ok {
		req.Tolerance = v
	}
	if v, ok := asInt(raw["restarts"]); ok {
		req.Restarts = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["workers"]); ok {
		req.Workers = v
	}
	if v, ok := asFloat64(raw["dominance_threshold"]); ok {
		req.DominanceThreshold = v
	}
	if rows, ok, err := asMatrix(raw["true_pfm"]); err != nil {
		return motiffind.RunRequest{}, fmt.Errorf("true_pfm: %w", err)
	} else if ok {
		req.TruePFM = rows
	}
	return req, nil
}

func loadSweepRequestFromConfig(path string) (motiffind.SweepRequest, error) {
	raw, err := readConfigMap(path)
	if err != nil {
		return motiffind.SweepRequest{}, err
	}

	var req motiffind.SweepRequest
	if v, ok, err := asIntList(raw["sequence_counts"]); err != nil {
		return motiffind.SweepRequest{}, fmt.Errorf("sequence_counts: %w", err)
	} else if ok {
		req.SequenceCounts = v
	}
	if v, ok, err := asIntList(raw["sequence_lengths"]); err != nil {
		return motiffind.SweepRequest{}, fmt.Errorf("sequence_lengths: %w", err)
	} else if ok {
		req.SequenceLengths = v
	}
	if v, ok := asInt(raw["replicates"]); ok {
		req.Replicates = v
	}
	if v, ok := asFloat64(raw["presence_prior"]); ok {
		req.PresencePrior = v
	}
	if v, ok := asFloat64(raw["prior_strength"]); ok {
		req.PriorStrength = v
	}
	if v, ok := asInt(raw["iteration_cap"]); ok {
		req.IterationCap = v
	}
	if v, ok := asFloat64(raw["tolerance"]); ok {
		req.Tolerance = v
	}
	if v, ok := asInt(raw["restarts"]); ok {
		req.Restarts = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["workers"]); ok {
		req.Workers = v
	}
	if v, ok := asFloat64(raw["dominance_threshold"]); ok {
		req.DominanceThreshold = v
	}
	if rows, ok, err := asMatrix(raw["true_pfm"]); err != nil {
		return motiffind.SweepRequest{}, fmt.Errorf("true_pfm: %w", err)
	} else if ok {
		req.TruePFM = rows
	}
	return req, nil
}

func readConfigMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func asInt64(v any) (int64, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func asFloat64(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func asIntList(v any) ([]int, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false, fmt.Errorf("expected a list of integers")
	}
	out := make([]int, 0, len(items))
	for i, item := range items {
		n, ok := asInt(item)
		if !ok {
			return nil, false, fmt.Errorf("entry %d is not an integer", i)
		}
		out = append(out, n)
	}
	return out, true, nil
}

func asMatrix(v any) ([][]float64, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	rows, ok := v.([]any)
	if !ok {
		return nil, false, fmt.Errorf("expected a list of rows")
	}
	out := make([][]float64, 0, len(rows))
	for i, rawRow := range rows {
		items, ok := rawRow.([]any)
		if !ok {
			return nil, false, fmt.Errorf("row %d is not a list", i)
		}
		row := make([]float64, 0, len(items))
		for j, item := range items {
			f, ok := asFloat64(item)
			if !ok {
				return nil, false, fmt.Errorf("row %d entry %d is not a number", i, j)
			}
			row = append(row, f)
		}
		out = append(out, row)
	}
	return out, true, nil
}
