package storage

import (
	"errors"
	"testing"

	"motiffind/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	run := model.RunRecord{
		VersionedRecord: Stamp(),
		ID:              "r1",
		Consensus:       "ACGNTGAA",
		Score:           0.72,
		PFM:             [][]float64{{0.7, 0.1, 0.1, 0.1}},
	}
	data, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeRun(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != run.ID || got.Consensus != run.Consensus || got.Score != run.Score {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: 99, CodecVersion: CurrentCodecVersion},
		ID:              "r1",
	}
	data, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeRun(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestSweepCodecRoundTrip(t *testing.T) {
	sweep := model.SweepRecord{
		VersionedRecord: Stamp(),
		ID:              "s1",
		Cells: []model.SweepCell{
			{SequenceCount: 10, SequenceLength: 100, MeanScore: 0.61},
		},
	}
	data, err := EncodeSweep(sweep)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSweep(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Cells) != 1 || got.Cells[0].MeanScore != 0.61 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestDecodeSweepRejectsVersionMismatch(t *testing.T) {
	sweep := model.SweepRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: 99},
		ID:              "s1",
	}
	data, err := EncodeSweep(sweep)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeSweep(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}
