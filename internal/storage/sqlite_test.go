//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"motiffind/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "motiffind.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	run := model.RunRecord{
		VersionedRecord: Stamp(),
		ID:              "r1",
		CreatedAtUTC:    "2026-01-01T00:00:01Z",
		Consensus:       "ACGNTGAA",
		Score:           0.66,
		PFM:             [][]float64{{0.7, 0.1, 0.1, 0.1}},
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.GetRun(ctx, "r1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Consensus != run.Consensus || got.Score != run.Score {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, ok, err := store.GetRun(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing run: ok=%v err=%v", ok, err)
	}
}

func TestSQLiteStoreListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	for i := 1; i <= 3; i++ {
		run := model.RunRecord{
			VersionedRecord: Stamp(),
			ID:              string(rune('a' + i - 1)),
			CreatedAtUTC:    "2026-01-01T00:00:0" + string(rune('0'+i)) + "Z",
		}
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected listing: %+v", runs)
	}
}

func TestSQLiteStoreSweepRoundTripAndReset(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	sweep := model.SweepRecord{
		VersionedRecord: Stamp(),
		ID:              "s1",
		CreatedAtUTC:    "2026-01-01T00:00:01Z",
		Cells:           []model.SweepCell{{SequenceCount: 10, MeanScore: 0.55}},
	}
	if err := store.SaveSweep(ctx, sweep); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.GetSweep(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got.Cells) != 1 || got.Cells[0].MeanScore != 0.55 {
		t.Fatalf("unexpected sweep: %+v", got)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok, _ := store.GetSweep(ctx, "s1"); ok {
		t.Fatal("sweep survived reset")
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "motiffind.db"))
	if _, _, err := store.GetRun(context.Background(), "x"); err == nil {
		t.Fatal("expected error before Init")
	}
}
