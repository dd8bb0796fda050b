// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot reads and writes engine audit snapshots: the
// construction-time record of a decision engine's delta permission
// set, exclusion set, and heuristic patterns.
//
// Snapshots are CBOR-encoded (deterministic, via lib/codec) and
// zstd-compressed. They are diagnostic artifacts for audit trails and
// offline inspection — nothing reads a snapshot back into a live
// engine.
package snapshot

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/warden-project/warden/lib/codec"
	"github.com/warden-project/warden/lib/schema"
)

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. zstd.Encoder and zstd.Decoder are
// safe for concurrent use in the EncodeAll/DecodeAll mode.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// Encode serializes a snapshot to compressed bytes.
func Encode(record schema.EngineSnapshot) ([]byte, error) {
	encoded, err := codec.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return zstdEncoder.EncodeAll(encoded, nil), nil
}

// Decode deserializes a snapshot from compressed bytes.
func Decode(data []byte) (schema.EngineSnapshot, error) {
	decompressed, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return schema.EngineSnapshot{}, fmt.Errorf("decompressing snapshot: %w", err)
	}
	var record schema.EngineSnapshot
	if err := codec.Unmarshal(decompressed, &record); err != nil {
		return schema.EngineSnapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return record, nil
}

// WriteFile writes a snapshot to path, creating or truncating it.
func WriteFile(path string, record schema.EngineSnapshot) error {
	data, err := Encode(record)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (schema.EngineSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.EngineSnapshot{}, fmt.Errorf("reading %s: %w", path, err)
	}
	record, err := Decode(data)
	if err != nil {
		return schema.EngineSnapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return record, nil
}
