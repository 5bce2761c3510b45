package storage

import (
	"context"
	"sync"

	"motiffind/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	runOrder    []string
	sweeps      map[string]model.SweepRecord
	sweepOrder  []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.runOrder = nil
	s.sweeps = make(map[string]model.SweepRecord)
	s.sweepOrder = nil
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; !ok {
		s.runOrder = append(s.runOrder, run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

// ListRuns returns the most recently saved runs first.
func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.RunRecord, 0, len(s.runOrder))
	for i := len(s.runOrder) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.runs[s.runOrder[i]])
	}
	return out, nil
}

func (s *MemoryStore) SaveSweep(_ context.Context, sweep model.SweepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sweeps[sweep.ID]; !ok {
		s.sweepOrder = append(s.sweepOrder, sweep.ID)
	}
	s.sweeps[sweep.ID] = sweep
	return nil
}

func (s *MemoryStore) GetSweep(_ context.Context, id string) (model.SweepRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sweep, ok := s.sweeps[id]
	return sweep, ok, nil
}

func (s *MemoryStore) ListSweeps(_ context.Context, limit int) ([]model.SweepRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SweepRecord, 0, len(s.sweepOrder))
	for i := len(s.sweepOrder) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.sweeps[s.sweepOrder[i]])
	}
	return out, nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}
