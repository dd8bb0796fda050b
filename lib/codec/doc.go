// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Warden's standard CBOR encoding configuration.
//
// Warden uses two serialization formats with a clear boundary:
//
//   - JSON for the authoring and inspection surface: JSONC policy
//     documents and CLI --json output.
//   - CBOR for compact binary records: the audit snapshot files
//     written by lib/snapshot.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every Warden package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes, so two snapshots of the same engine state are byte-comparable.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// Wire types in lib/schema carry both `json` tags (named keys for the
// human-facing formats) and `cbor` tags with integer keys (compact
// binary form). The integer keys are stable field identifiers — never
// renumber an existing field.
package codec
