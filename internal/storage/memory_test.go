package storage

import (
	"context"
	"fmt"
	"testing"

	"motiffind/internal/model"
)

func testRun(id string, score float64) model.RunRecord {
	return model.RunRecord{
		VersionedRecord: Stamp(),
		ID:              id,
		CreatedAtUTC:    fmt.Sprintf("2026-01-01T00:00:0%sZ", id),
		Consensus:       "ACGT",
		Score:           score,
	}
}

func TestMemoryStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := store.SaveRun(ctx, testRun("1", 0.7)); err != nil {
		t.Fatalf("save: %v", err)
	}
	run, ok, err := store.GetRun(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if run.Score != 0.7 || run.Consensus != "ACGT" {
		t.Fatalf("unexpected record: %+v", run)
	}

	if _, ok, err := store.GetRun(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing run: ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreListRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	for i := 1; i <= 3; i++ {
		if err := store.SaveRun(ctx, testRun(fmt.Sprint(i), float64(i)/10)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 || runs[0].ID != "3" || runs[2].ID != "1" {
		t.Fatalf("unexpected order: %+v", runs)
	}

	limited, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "3" {
		t.Fatalf("unexpected limited listing: %+v", limited)
	}
}

func TestMemoryStoreSaveRunOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.SaveRun(ctx, testRun("1", 0.4)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveRun(ctx, testRun("1", 0.9)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 0.9 {
		t.Fatalf("unexpected listing after overwrite: %+v", runs)
	}
}

func TestMemoryStoreSweepRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	sweep := model.SweepRecord{
		VersionedRecord: Stamp(),
		ID:              "s1",
		Cells:           []model.SweepCell{{SequenceCount: 10, MeanScore: 0.5}},
	}
	if err := store.SaveSweep(ctx, sweep); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.GetSweep(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got.Cells) != 1 || got.Cells[0].SequenceCount != 10 {
		t.Fatalf("unexpected sweep: %+v", got)
	}
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.SaveRun(ctx, testRun("1", 0.5)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty store, got %d runs", len(runs))
	}
}
