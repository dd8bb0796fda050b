// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// EngineSnapshot is the audit record of a constructed decision engine:
// what the delta computation produced and which origins are excluded
// from delta grants. Written by lib/snapshot as compressed CBOR, and
// emitted by the CLI as JSON.
//
// The snapshot is diagnostic only — it never feeds back into decision
// making.
type EngineSnapshot struct {
	// Marker is the property key whose presence triggered the
	// augmented grant during delta computation.
	Marker string `json:"marker" cbor:"1,keyasint"`

	// SyntheticLocation is the "any old codebase" location the delta
	// was computed for.
	SyntheticLocation string `json:"synthetic_location" cbor:"2,keyasint"`

	// Delta is the permission set uniquely attributable to the marker,
	// in canonical order.
	Delta []PermissionSpec `json:"delta" cbor:"3,keyasint"`

	// Excluded lists the locations of trusted-infrastructure origins
	// that never receive delta permissions.
	Excluded []string `json:"excluded" cbor:"4,keyasint"`

	// Heuristics lists the location substring patterns that deny delta
	// grants to generated test code.
	Heuristics []string `json:"heuristics,omitempty" cbor:"5,keyasint,omitempty"`

	// CreatedAt is an RFC 3339 timestamp of snapshot creation.
	CreatedAt string `json:"created_at,omitempty" cbor:"6,keyasint,omitempty"`
}
