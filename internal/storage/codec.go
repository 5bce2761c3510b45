package storage

import (
	"encoding/json"
	"errors"

	"motiffind/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// Stamp returns the version header every freshly written record carries.
func Stamp() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var run model.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return run, nil
}

func EncodeSweep(s model.SweepRecord) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeSweep(data []byte) (model.SweepRecord, error) {
	var sweep model.SweepRecord
	if err := json.Unmarshal(data, &sweep); err != nil {
		return model.SweepRecord{}, err
	}
	if err := checkVersion(sweep.VersionedRecord); err != nil {
		return model.SweepRecord{}, err
	}
	return sweep, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion {
		return ErrVersionMismatch
	}
	if v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
